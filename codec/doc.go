/*
Package codec converts between string maps and the flat text encoding used to
configure the fake and to report captured parameters:

	key1=value1,key2=value2

There is no escaping or quoting. A value must not contain ',' and a key must
not contain '=' or ','. Empty keys are dropped by Encode; anything else
round-trips.
*/
package codec
