package eip2335

// Zero overwrites b with zero bytes in place. Callers defer this on the byte
// buffers that hold a password, a derived key or the plaintext secret,
// on both the success and the error paths, per the secret-hygiene design
// note: these buffers must never outlive the pipeline call that created
// them.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
