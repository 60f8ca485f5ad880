/*
Package stub provides a scriptable fake of the Nabto client library.

Each native entry point is emulated by one Stub method. Before a call, a test
configures the outcome through the return-value store; during the call the
Stub records the inputs it was given; afterwards the test reads them back.

	s := stub.New(stub.Config{})
	s.ReturnValues().Configure("status=0")

	h, status, err := s.OpenSession("alice", "secret")
	// h == clientapi.SessionSentinel, status == clientapi.StatusOK

	s.Parameters().Snapshot() // "id=alice,password=secret"

Every operation except Version, Shutdown, SetStaticResourceDir and Free
requires a configured status. When a required key is missing the operation
returns an error wrapping store.ErrMissingKey and produces no outputs.
*/
package stub
