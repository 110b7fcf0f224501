package testutils

import (
	"math/rand"
	"strings"
	"time"
)

var alphabet = "azertyuiopqsdfghjklmwxcvbn"

func init() {
	rand.New(rand.NewSource(time.Now().UnixNano()))
}

func Random(min, max int64) int64 {
	return min + rand.Int63n(max-min+1)
}

func RandomString(length int64) string {
	var sb strings.Builder
	k := len(alphabet)
	for i := 0; i < int(length); i++ {
		b := alphabet[rand.Intn(k)]
		sb.WriteByte(b)
	}
	return sb.String()
}

func RandomStoreName() string {
	return "store-" + RandomString(8)
}

func RandomEmail() string {
	return RandomString(10) + "@example.com"
}
