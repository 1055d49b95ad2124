package config

import (
	"os"
	"strconv"
	"time"
)

// Semua konfigurasi dibaca dari environment (.env dimuat oleh main lewat godotenv).

func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// SessionTTL lama hidup session sejak dibuat (tanpa sliding renewal).
func SessionTTL() time.Duration {
	return durationEnv("SESSION_TTL_MINUTES", 8*time.Hour)
}

// UnpaidCacheTTL jendela cache untuk daftar order belum dibayar.
func UnpaidCacheTTL() time.Duration {
	return durationEnv("UNPAID_CACHE_TTL_SECONDS", 15*time.Second)
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	switch {
	case key == "SESSION_TTL_MINUTES":
		return time.Duration(n) * time.Minute
	default:
		return time.Duration(n) * time.Second
	}
}

// AppLocation timezone venue, dipakai untuk batas "hari" pada award poin dan
// contact lookup. Default Asia/Bangkok seperti deployment aslinya.
func AppLocation() *time.Location {
	name := Getenv("APP_TZ", "Asia/Bangkok")
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

// AdminUser / AdminPass kredensial moderator dari .env (tanpa hashing, sesuai
// scope sistem satu venue).
func AdminUser() string { return Getenv("ADMIN_USER", "") }
func AdminPass() string { return Getenv("ADMIN_PASS", "") }

// AdminContactPIN shared secret kedua untuk membuka data kontak tamu.
func AdminContactPIN() string { return Getenv("ADMIN_CONTACT_PIN", "") }
