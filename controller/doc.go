/*
Package controller exposes the two test-facing operations of the fake client
library: setReturnValues and getParameterValues.

Inside a test process the Controller forwards straight to a stub.Stub:

	s := stub.New(stub.Config{})
	c := controller.New(s)
	c.SetReturnValues("status=0")
	s.OpenSession("alice", "")
	c.GetParameterValues() // "id=alice,password="

Inside a WebAssembly guest, Register exports both operations as waPC
functions so a host can script the fake, and Client calls a host that runs
the fake on the guest's behalf.
*/
package controller
