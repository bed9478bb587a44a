package signing

import (
	"crypto"
	"crypto/rsa"
	"testing"
)

func mustRSAPublicKey(t *testing.T, pub any) *rsa.PublicKey {
	t.Helper()
	key, ok := pub.(*rsa.PublicKey)
	if !ok {
		t.Fatalf("expected *rsa.PublicKey, got %T", pub)
	}
	return key
}

func verifyRSASignature(pub *rsa.PublicKey, digest, sig []byte) error {
	return rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest, sig)
}
