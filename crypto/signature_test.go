package crypto

import (
	"encoding/json"
	"errors"

	. "gopkg.in/check.v1"
)

type SignatureSuite struct{}

var _ = Suite(&SignatureSuite{})

var signVectors = []struct {
	digest    string
	signature string
}{
	{
		// sha256("foo"), canonical on the first attempt
		digest:    "2c26b46b68ffc68ff99b453c1d30413413422d706483bfa0f98a5e886266e7ae",
		signature: "1f380cdf10a0f096e5d8307798db7c43dc1782f95460b2c499509c8e5df271e0be188d321c9df8ed123119fdc1a1039eec186a8f695988a8613d6cbee3fbc8c0b3",
	},
	{
		// sha256([]byte{2}), canonical on the second attempt
		digest:    "dbc1b4c900ffe48d575b5da5c638040125f65db0fe3e24494b76ea986457d986",
		signature: "20308b906fe53187e7693e327cdcd80024d2820bf91a24b5f0fb6f3e21935371054d39275c7acdc52b2b93f523468c15890595d76b7bed0c4ddd90c035a20ef172",
	},
}

func (s *SignatureSuite) TestSignVectors(c *C) {
	key := PrivateKeyFromSeed("hello")
	for _, v := range signVectors {
		sig, err := key.Sign(h2b(v.digest))
		c.Assert(err, IsNil)
		c.Check(sig.String(), Equals, v.signature)
		c.Check(sig.IsCanonical(), Equals, true)
	}
}

func (s *SignatureSuite) TestSignRecoverVerify(c *C) {
	key := PrivateKeyFromSeed("hello")
	pub := key.PublicKey()
	for i := 0; i < 32; i++ {
		digest := Sha256([]byte{byte(i)}, []byte("message"))
		sig, err := key.Sign(digest)
		c.Assert(err, IsNil)
		c.Check(IsCanonical(sig.Data[:]), Equals, true)

		recovered, err := sig.Recover(digest, "STM")
		c.Assert(err, IsNil)
		c.Check(recovered.String(), Equals, pub.String())
		c.Check(pub.Verify(digest, sig), Equals, true)

		other := Sha256(digest)
		c.Check(pub.Verify(other, sig), Equals, false)
	}
}

func (s *SignatureSuite) TestSignBadDigest(c *C) {
	_, err := PrivateKeyFromSeed("hello").Sign([]byte("short"))
	c.Check(err, Equals, ErrInvalidDigest)
}

func (s *SignatureSuite) TestParseSignature(c *C) {
	sig, err := ParseSignature(signVectors[0].signature)
	c.Assert(err, IsNil)
	c.Check(sig.Recovery, Equals, byte(0))
	c.Check(sig.String(), Equals, signVectors[0].signature)

	_, err = ParseSignature("1f00")
	c.Check(errors.Is(err, ErrInvalidSignature), Equals, true)
	_, err = ParseSignature("zz")
	c.Check(errors.Is(err, ErrInvalidSignature), Equals, true)
	bad := h2b(signVectors[0].signature)
	bad[0] = 27
	_, err = SignatureFromBytes(bad)
	c.Check(errors.Is(err, ErrInvalidSignature), Equals, true)
}

func (s *SignatureSuite) TestSignatureJSON(c *C) {
	sig, err := ParseSignature(signVectors[1].signature)
	c.Assert(err, IsNil)
	data, err := json.Marshal([]*Signature{sig})
	c.Assert(err, IsNil)
	c.Check(string(data), Equals, `["`+signVectors[1].signature+`"]`)

	var decoded []*Signature
	c.Assert(json.Unmarshal(data, &decoded), IsNil)
	c.Check(decoded[0].Data, DeepEquals, sig.Data)
}

func (s *SignatureSuite) TestIsCanonical(c *C) {
	sig := make([]byte, 64)
	sig[0], sig[32] = 0x01, 0x01
	c.Check(IsCanonical(sig), Equals, true)

	sig[0] = 0x80
	c.Check(IsCanonical(sig), Equals, false)

	sig[0], sig[1] = 0x00, 0x01
	c.Check(IsCanonical(sig), Equals, false)
	sig[1] = 0x80
	c.Check(IsCanonical(sig), Equals, true)

	sig[32], sig[33] = 0x00, 0x7f
	c.Check(IsCanonical(sig), Equals, false)
	c.Check(IsCanonical(sig[:63]), Equals, false)
}
