package suppliers

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// hotelbedsSignature is hex(sha256(apiKey + secret + unixSeconds)).
func hotelbedsSignature(key, secret string, now time.Time) string {
	sum := sha256.Sum256([]byte(key + secret + strconv.FormatInt(now.Unix(), 10)))
	return hex.EncodeToString(sum[:])
}

// eanAuthorization builds the Rapid "EAN" Authorization header value.
func eanAuthorization(key, secret string, now time.Time) string {
	ts := strconv.FormatInt(now.Unix(), 10)
	sum := sha512.Sum512([]byte(key + secret + ts))
	return fmt.Sprintf("EAN APIKey=%s,Signature=%s,timestamp=%s", key, hex.EncodeToString(sum[:]), ts)
}

// wsseDigest is the UsernameToken PasswordDigest:
// Base64(SHA1(nonce + created + SHA1(password))).
func wsseDigest(nonce []byte, created, password string) string {
	pw := sha1.Sum([]byte(password))
	h := sha1.New()
	h.Write(nonce)
	h.Write([]byte(created))
	h.Write(pw[:])
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
