package signer

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntity(t *testing.T, name string) *openpgp.Entity {
	t.Helper()
	entity, err := openpgp.NewEntity(name, "", name+"@example.com", nil)
	require.NoError(t, err)
	return entity
}

func writeKeyring(t *testing.T, entity *openpgp.Entity, armored bool) string {
	t.Helper()
	var buf bytes.Buffer

	if armored {
		w, err := armor.Encode(&buf, openpgp.PublicKeyType, nil)
		require.NoError(t, err)
		require.NoError(t, entity.Serialize(w))
		require.NoError(t, w.Close())
	} else {
		require.NoError(t, entity.Serialize(&buf))
	}

	path := filepath.Join(t.TempDir(), "keyring.gpg")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestVerifyBinaryAndArmored(t *testing.T) {
	entity := newEntity(t, "packager")
	data := []byte("package contents")

	var binSig, armSig bytes.Buffer
	require.NoError(t, openpgp.DetachSign(&binSig, entity, bytes.NewReader(data), nil))
	require.NoError(t, openpgp.ArmoredDetachSign(&armSig, entity, bytes.NewReader(data), nil))

	for _, armoredKeyring := range []bool{true, false} {
		v, err := NewKeyringVerifier(writeKeyring(t, entity, armoredKeyring))
		require.NoError(t, err)

		signer, err := v.check(bytes.NewReader(data), binSig.Bytes())
		require.NoError(t, err)
		assert.Contains(t, signer, "packager")
		assert.Contains(t, signer, entity.PrimaryKey.KeyIdString())

		_, err = v.check(bytes.NewReader(data), armSig.Bytes())
		require.NoError(t, err)
	}
}

func TestVerifyRejects(t *testing.T) {
	trusted := newEntity(t, "trusted")
	stranger := newEntity(t, "stranger")
	data := []byte("package contents")

	v, err := NewKeyringVerifier(writeKeyring(t, trusted, true))
	require.NoError(t, err)

	var sig bytes.Buffer
	require.NoError(t, openpgp.DetachSign(&sig, stranger, bytes.NewReader(data), nil))
	_, err = v.check(bytes.NewReader(data), sig.Bytes())
	assert.Error(t, err)

	sig.Reset()
	require.NoError(t, openpgp.DetachSign(&sig, trusted, bytes.NewReader(data), nil))
	_, err = v.check(bytes.NewReader([]byte("tampered contents")), sig.Bytes())
	assert.Error(t, err)
}

func TestVerifyFile(t *testing.T) {
	entity := newEntity(t, "packager")
	dir := t.TempDir()
	pkg := filepath.Join(dir, "foo-1-1-any.pkg.tar.zst")
	require.NoError(t, os.WriteFile(pkg, []byte("zstd bytes"), 0644))

	var sig bytes.Buffer
	require.NoError(t, openpgp.DetachSign(&sig, entity, bytes.NewReader([]byte("zstd bytes")), nil))
	require.NoError(t, os.WriteFile(pkg+".sig", sig.Bytes(), 0644))

	v, err := NewKeyringVerifier(writeKeyring(t, entity, false))
	require.NoError(t, err)

	signer, err := v.VerifyFile(pkg, pkg+".sig")
	require.NoError(t, err)
	assert.Contains(t, signer, "packager")

	_, err = v.VerifyFile(pkg, filepath.Join(dir, "missing.sig"))
	assert.Error(t, err)
}

func TestNewKeyringVerifierErrors(t *testing.T) {
	_, err := NewKeyringVerifier("")
	assert.Error(t, err)

	_, err = NewKeyringVerifier(filepath.Join(t.TempDir(), "missing.gpg"))
	assert.Error(t, err)

	junk := filepath.Join(t.TempDir(), "junk.gpg")
	require.NoError(t, os.WriteFile(junk, []byte("not a key"), 0644))
	_, err = NewKeyringVerifier(junk)
	assert.Error(t, err)
}
