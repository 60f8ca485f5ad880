/*
Package store implements the two stores behind the scriptable fake.

ReturnValues holds the outcome prescribed for the next fake operation. It is
replaced wholesale from an encoded string and is never cleared implicitly, so
a test configures it before every operation whose outcome it cares about.
Values are classified into a tagged Value as soon as they are stored; a lookup
of an absent key fails with ErrMissingKey instead of producing a default.

Parameters captures the inputs of the most recently invoked fake operation.
Each operation resets it before recording, so a Snapshot always describes a
single call.

Neither store is safe for concurrent use.
*/
package store
