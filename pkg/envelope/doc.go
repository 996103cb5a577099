// Package envelope parses the parts of a registry request into an immutable
// Envelope: the target identifier, the document exactly as received, the
// decoded document and the decoded instruction.
//
//	env, err := envelope.DefaultParser().Parse(target, document, instruction)
//	if errors.Is(err, did.ErrFormat) {
//	    // err names the malformed field, e.g. "malformed publicKey.material"
//	}
//
// Signatures are computed over RawDocument, never over a re-encoding of
// Document.
package envelope
