package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type gameOutput struct {
	Logo        string       `json:"logo"`
	Products    []Product    `json:"products"`
	Social      socialObject `json:"social"`
	Description string       `json:"description"`
	LastUpdated string       `json:"last_updated,omitempty"`
}

type socialObject []SocialLink

func (s socialObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, l.Name, l.URL); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON encodes the set as a games.json object in set order.
func (s *GameSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.order {
		g := s.games[name]
		if i > 0 {
			buf.WriteByte(',')
		}
		products := g.Products
		if products == nil {
			products = []Product{}
		}
		out := gameOutput{
			Logo:        g.Logo,
			Products:    products,
			Social:      socialObject(g.Social),
			Description: g.Description,
			LastUpdated: g.LastUpdated,
		}
		if err := writeMember(&buf, name, out); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type giftCodeOutput struct {
	Banner      string     `json:"banner"`
	Description string     `json:"description"`
	HowTo       []string   `json:"howTo"`
	Codes       []GiftCode `json:"codes"`
}

// MarshalJSON encodes the set as a gift-codes-data.json object in set order.
func (s *GiftCodeSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.order {
		g := s.games[name]
		if i > 0 {
			buf.WriteByte(',')
		}
		out := giftCodeOutput{
			Banner:      g.Banner,
			Description: g.Description,
			HowTo:       g.HowTo,
			Codes:       g.Codes,
		}
		if out.HowTo == nil {
			out.HowTo = []string{}
		}
		if out.Codes == nil {
			out.Codes = []GiftCode{}
		}
		if err := writeMember(&buf, name, out); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, key string, v any) error {
	if err := writeValue(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return writeValue(buf, v)
}

func writeValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// WriteJSON writes v as the data files are stored: two-space indent with
// non-ASCII and HTML characters left unescaped.
func WriteJSON(w io.Writer, v json.Marshaler) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteFile writes v to path through a temporary file in the same directory
// so readers never observe a partially written catalog.
func WriteFile(path string, v json.Marshaler) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("catalog: create temp file: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("catalog: chmod %s: %w", tmp.Name(), err)
	}
	if err := WriteJSON(tmp, v); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("catalog: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("catalog: close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("catalog: rename %s: %w", path, err)
	}
	return nil
}
