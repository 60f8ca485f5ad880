/*
Package clientapi holds the shared contract of the Nabto client C API as seen
by the scriptable fake: status codes, connection and tunnel enumerations,
handle types with their sentinel values, and the runtime configuration used
by the waPC boundary components.

The fake itself lives in the stub package, the configuration and capture
encoding in codec, the two stores in store, and the boundary surface in
controller and host.
*/
package clientapi
