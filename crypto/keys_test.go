package crypto

import (
	"encoding/json"
	"errors"
	"strings"

	. "gopkg.in/check.v1"
)

type KeySuite struct{}

var _ = Suite(&KeySuite{})

func (s *KeySuite) TestFromSeed(c *C) {
	key := PrivateKeyFromSeed("hello")
	c.Check(key.Wif(), Equals, helloWif)
	c.Check(key.PublicKey().String(), Equals, helloPublic)
	c.Check(key.PublicKey().Bytes(), DeepEquals, h2b(helloRawPub))
}

func (s *KeySuite) TestFromLogin(c *C) {
	key := PrivateKeyFromLogin("foo", "barman", RoleActive)
	c.Check(key.Wif(), Equals, "5KG4sr3rMH1QuduYj79p36h7PrEeZakHEPjB9NkLWqgw19DDieL")
	c.Check(key.PublicKey().String(), Equals, "STM87F7tN56tAUL2C6J9Gzi9HzgNpZdi6M2cLQo7TjDU5v178QsYA")
	c.Check(PrivateKeyFromLogin("foo", "barman", RolePosting).Wif(), Not(Equals), key.Wif())
}

func (s *KeySuite) TestWifRoundTrip(c *C) {
	for _, wif := range []string{helloWif, "5JQy7moK9SvNNDxn8rKNfQYFME5VDYC2j9Mv2tb7uXV5jz3fQR8"} {
		key, err := PrivateKeyFromWif(wif)
		c.Assert(err, IsNil)
		c.Check(key.Wif(), Equals, wif)
	}
	random, err := GenerateRandomKey()
	c.Assert(err, IsNil)
	decoded, err := PrivateKeyFromWif(random.Wif())
	c.Assert(err, IsNil)
	c.Check(decoded.PublicKey().Equal(random.PublicKey()), Equals, true)
}

func (s *KeySuite) TestTestnetPublicKey(c *C) {
	key, err := PrivateKeyFromWif("5JQy7moK9SvNNDxn8rKNfQYFME5VDYC2j9Mv2tb7uXV5jz3fQR8")
	c.Assert(err, IsNil)
	pub := key.PublicKeyWithPrefix("STX")
	c.Check(pub.String(), Equals, "STX8FiV6v7yqYWTZz8WuFDckWr62L9X34hCy6koe8vd2cDJHimtgM")
	c.Check(pub.Prefix(), Equals, "STX")
	c.Check(pub.WithPrefix("STM").Equal(pub), Equals, true)
}

func (s *KeySuite) TestPublicKeyRoundTrip(c *C) {
	pub, err := PublicKeyFromString(helloPublic)
	c.Assert(err, IsNil)
	c.Check(pub.String(), Equals, helloPublic)
	c.Check(pub.Prefix(), Equals, "STM")
	c.Check(pub.IsNull(), Equals, false)

	other, err := NewPublicKey(h2b(helloRawPub), "TST")
	c.Assert(err, IsNil)
	c.Check(other.Equal(pub), Equals, true)
	c.Check(strings.HasPrefix(other.String(), "TST"), Equals, true)
}

func (s *KeySuite) TestNullPublicKey(c *C) {
	null := NullPublicKey("STM")
	c.Check(null.String(), Equals, "STM1111111111111111111111111111111114T1Anm")
	c.Check(null.Bytes(), DeepEquals, make([]byte, 33))
	decoded, err := PublicKeyFromString(null.String())
	c.Assert(err, IsNil)
	c.Check(decoded.IsNull(), Equals, true)
}

func (s *KeySuite) TestTamperedKeys(c *C) {
	// change one character of the base58 payload
	tampered := []byte(helloWif)
	tampered[10]++
	_, err := PrivateKeyFromWif(string(tampered))
	c.Check(errors.Is(err, ErrChecksumMismatch), Equals, true)

	tampered = []byte(helloPublic)
	tampered[20]++
	_, err = PublicKeyFromString(string(tampered))
	c.Check(errors.Is(err, ErrChecksumMismatch), Equals, true)

	_, err = PublicKeyFromString("STM")
	c.Check(errors.Is(err, ErrInvalidPrefix), Equals, true)
}

func (s *KeySuite) TestWrongNetworkID(c *C) {
	payload := append([]byte{0x81}, PrivateKeyFromSeed("hello").key.Serialize()...)
	_, err := PrivateKeyFromWif(encodeChecked(payload, doubleSha256Checksum))
	c.Check(errors.Is(err, ErrInvalidNetworkID), Equals, true)
}

func (s *KeySuite) TestInvalidKeyMaterial(c *C) {
	_, err := NewPrivateKey(make([]byte, 31))
	c.Check(errors.Is(err, ErrInvalidKeyLength), Equals, true)
	_, err = NewPrivateKey(make([]byte, 32))
	c.Check(errors.Is(err, ErrInvalidPrivateKey), Equals, true)
	_, err = NewPrivateKey(h2b("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"))
	c.Check(errors.Is(err, ErrInvalidPrivateKey), Equals, true)

	bad := h2b(helloRawPub)
	bad[0] = 0x05
	_, err = NewPublicKey(bad, "STM")
	c.Check(errors.Is(err, ErrInvalidPublicKey), Equals, true)
}

func (s *KeySuite) TestPrivateKeyString(c *C) {
	key := PrivateKeyFromSeed("hello")
	c.Check(key.String(), Equals, "PrivateKey: 5JA5gN...guJEvm")
	c.Check(strings.Contains(key.String(), helloWif), Equals, false)
}

func (s *KeySuite) TestPublicKeyJSON(c *C) {
	type holder struct {
		Key *PublicKey `json:"key"`
	}
	data, err := json.Marshal(holder{Key: MustPublicKeyFromString(helloPublic)})
	c.Assert(err, IsNil)
	c.Check(string(data), Equals, `{"key":"`+helloPublic+`"}`)

	var decoded holder
	c.Assert(json.Unmarshal(data, &decoded), IsNil)
	c.Check(decoded.Key.String(), Equals, helloPublic)
	c.Check(json.Unmarshal([]byte(`{"key":"STMbad"}`), &decoded), NotNil)
}
