package tangle

import (
	"golang.org/x/crypto/sha3"
)

// tryteAlphabet is the ledger's 27-symbol trinary alphabet.
const tryteAlphabet = "9ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Sha3Digest hashes trytes with SHA3-384 and renders the digest in the
// ledger's tryte alphabet, standing in for the real node's Curl/Kerl
// transform (an external collaborator this package deliberately does
// not implement).
func Sha3Digest(trytes Trytes) Hash {
	sum := sha3.Sum384([]byte(trytes))
	out := make([]byte, len(sum)*2)
	for i, b := range sum {
		out[i*2] = tryteAlphabet[b%27]
		out[i*2+1] = tryteAlphabet[(b/27)%27]
	}
	return Hash(out)
}
