package crypto

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// 旧库密码为 32 位 MD5；登录命中后升级为 bcrypt

func MD5Hex(s string) string {
	h := md5.Sum([]byte(s))
	return hex.EncodeToString(h[:])
}

func IsLegacyMD5(stored string) bool {
	return len(stored) == 32 && !strings.HasPrefix(stored, "$2")
}

func HashPassword(pwd string) string {
	bs, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return MD5Hex(pwd)
	}
	return string(bs)
}

// VerifyPassword 自动识别 legacy md5 与 bcrypt
func VerifyPassword(plain, stored string) bool {
	if IsLegacyMD5(stored) {
		return MD5Hex(plain) == stored
	}
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
	}
	return false
}
