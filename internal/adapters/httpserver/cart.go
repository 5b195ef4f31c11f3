package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"

	"github.com/Djolex15/stripy-sub000/internal/domain"
)

type cartItem struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type cartPayload struct {
	Items []cartItem `json:"items"`
}

type cartLine struct {
	Product  domain.Product
	Qty      int
	Unit     int64
	Subtotal int64
}

func secretKey() []byte {
	k := os.Getenv("SESSION_KEY")
	if k == "" {
		k = "dev-insecure"
	}
	return []byte(k)
}

func readCart(r *http.Request) cartPayload {
	c, err := r.Cookie("cart")
	if err != nil {
		return cartPayload{}
	}
	return decodeCart(c.Value)
}

func decodeCart(value string) cartPayload {
	dot := -1
	for i := range value {
		if value[i] == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		return cartPayload{}
	}
	sig, _ := base64.RawURLEncoding.DecodeString(value[:dot])
	payload, _ := base64.RawURLEncoding.DecodeString(value[dot+1:])
	h := hmac.New(sha256.New, secretKey())
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return cartPayload{}
	}
	var cp cartPayload
	_ = json.Unmarshal(payload, &cp)
	return cp
}

func encodeCart(cp cartPayload) string {
	b, _ := json.Marshal(cp)
	h := hmac.New(sha256.New, secretKey())
	h.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(h.Sum(nil))
	return sig + "." + base64.RawURLEncoding.EncodeToString(b)
}

func writeCart(w http.ResponseWriter, cp cartPayload) {
	http.SetCookie(w, &http.Cookie{
		Name: "cart", Value: encodeCart(cp), Path: "/",
		MaxAge: 60 * 60 * 24 * 7, HttpOnly: true,
	})
}

// addToCart bumps the quantity of an existing line or appends a new one, so
// repeated adds never grow the cookie.
func addToCart(cp cartPayload, id string) cartPayload {
	for i := range cp.Items {
		if cp.Items[i].ProductID == id {
			cp.Items[i].Qty++
			return cp
		}
	}
	cp.Items = append(cp.Items, cartItem{ProductID: id, Qty: 1})
	return cp
}

// aggregateCart merges duplicate lines, drops unknown products and prices
// everything from the catalog in the given currency.
func aggregateCart(cp cartPayload, currency domain.Currency) ([]cartLine, int64) {
	qtyByID := map[string]int{}
	order := []string{}
	for _, it := range cp.Items {
		if it.Qty <= 0 {
			continue
		}
		if _, seen := qtyByID[it.ProductID]; !seen {
			order = append(order, it.ProductID)
		}
		qtyByID[it.ProductID] += it.Qty
	}
	lines := []cartLine{}
	total := int64(0)
	for _, id := range order {
		p := domain.FindProduct(id)
		if p == nil {
			continue
		}
		unit := p.Price(currency)
		qty := qtyByID[id]
		lines = append(lines, cartLine{Product: *p, Qty: qty, Unit: unit, Subtotal: unit * int64(qty)})
		total += unit * int64(qty)
	}
	return lines, total
}
