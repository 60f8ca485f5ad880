/*
Package host serves the fake client library to a WebAssembly guest over waPC.

A Host answers two capabilities in its namespace. The controller capability
scripts the fake (setReturnValues) and reads back captured inputs
(getParameterValues), both as raw encoded text. The clientapi capability
runs one fake operation per call: the function is the native entry point
name, such as nabtoOpenSession, and the payload carries the encoded
arguments.

	h, _ := host.New(host.Config{})
	h.HostCall("nabto", "controller", "setReturnValues", []byte("status=0"))
	b, err := h.HostCall("nabto", "clientapi", "nabtoOpenSession", []byte("id=alice,password="))

Responses of the clientapi capability are protobuf encoded
kvstore.KVStoreGetResponse messages. Status.Code holds the emulated status
and Data holds the encoded outputs. Buffers the fake hands out are freed by
the Host once copied into the response.
*/
package host
