package config

import (
	"os"
	"strconv"
)

type Config struct {
	DataDir     string
	CatalogPath string

	// Pricing rules
	DeliveryCharge        int
	FreeDeliveryThreshold int
	DiscountThreshold     int
	DiscountPercentage    int

	// SMTP for the confirmation mail; mail is skipped when incomplete
	SMTPServer     string
	SMTPPort       int
	SenderEmail    string
	SenderPassword string
	SenderName     string
}

func Load() Config {
	return Config{
		DataDir:     getenv("GROCY_DATA_DIR", "."),
		CatalogPath: getenv("CATALOG_FILE", "catalog.json"),

		DeliveryCharge:        getint("DELIVERY_CHARGE", 50),
		FreeDeliveryThreshold: getint("FREE_DELIVERY_THRESHOLD", 1000),
		DiscountThreshold:     getint("DISCOUNT_THRESHOLD", 5000),
		DiscountPercentage:    getint("DISCOUNT_PERCENTAGE", 10),

		SMTPServer:     os.Getenv("SMTP_SERVER"),
		SMTPPort:       getint("SMTP_PORT", 587),
		SenderEmail:    os.Getenv("SENDER_EMAIL"),
		SenderPassword: os.Getenv("SENDER_PASSWORD"),
		SenderName:     getenv("SENDER_NAME", "GrocyMate"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
