package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// walkObject reads one JSON object from dec and calls fn for each member in
// document order. Duplicate keys are passed through; callers keep the last.
func walkObject(dec *json.Decoder, fn func(key string, raw json.RawMessage) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

type gameRecord struct {
	Logo        string          `json:"logo"`
	Products    []Product       `json:"products"`
	Social      json.RawMessage `json:"social"`
	Description string          `json:"description"`
	LastUpdated string          `json:"last_updated"`
}

type giftCodeRecord struct {
	Banner      string     `json:"banner"`
	Description string     `json:"description"`
	HowTo       []string   `json:"howTo"`
	Codes       []GiftCode `json:"codes"`
}

// DecodeGames parses games.json keeping the key order.
func DecodeGames(r io.Reader) (*GameSet, error) {
	set := newGameSet()
	err := walkObject(json.NewDecoder(r), func(name string, raw json.RawMessage) error {
		var rec gameRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		social, err := decodeSocial(rec.Social)
		if err != nil {
			return fmt.Errorf("social: %w", err)
		}
		set.put(Game{
			Name:        name,
			Logo:        rec.Logo,
			Products:    rec.Products,
			Social:      social,
			Description: rec.Description,
			LastUpdated: rec.LastUpdated,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", GamesFile, err)
	}
	return set, nil
}

func decodeSocial(raw json.RawMessage) ([]SocialLink, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var links []SocialLink
	err := walkObject(json.NewDecoder(bytes.NewReader(raw)), func(name string, v json.RawMessage) error {
		var url string
		if err := json.Unmarshal(v, &url); err != nil {
			return err
		}
		links = append(links, SocialLink{Name: name, URL: url})
		return nil
	})
	return links, err
}

// DecodeGiftCodes parses gift-codes-data.json keeping the key order.
func DecodeGiftCodes(r io.Reader) (*GiftCodeSet, error) {
	set := newGiftCodeSet()
	err := walkObject(json.NewDecoder(r), func(name string, raw json.RawMessage) error {
		var rec giftCodeRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return err
		}
		set.put(GiftCodeGame{
			Name:        name,
			Banner:      rec.Banner,
			Description: rec.Description,
			HowTo:       rec.HowTo,
			Codes:       rec.Codes,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", GiftCodesFile, err)
	}
	return set, nil
}
