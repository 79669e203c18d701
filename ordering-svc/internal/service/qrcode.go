package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(restaurantID string, tableNumber int) ([]byte, error)
}

// DefaultQRGenerator renders PNG table tents pointing at the ordering front-end.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Link(restaurantID string, tableNumber int) string {
	return fmt.Sprintf("%s/?restaurantId=%s&table=%d",
		strings.TrimRight(g.BaseURL, "/"), url.QueryEscape(restaurantID), tableNumber)
}

func (g DefaultQRGenerator) Generate(restaurantID string, tableNumber int) ([]byte, error) {
	return qrcode.Encode(g.Link(restaurantID, tableNumber), qrcode.Medium, 256)
}
