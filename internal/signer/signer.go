// Package signer checks detached OpenPGP signatures of built packages.
package signer

// Verifier checks detached signatures against trusted keys
type Verifier interface {
	// VerifyFile checks the signature at sigPath over the file at path and
	// returns a description of the signing key
	VerifyFile(path, sigPath string) (string, error)
}
