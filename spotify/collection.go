package spotify

import (
	"encoding/json"
	"strconv"

	"github.com/yhkl-dev/cmusic/domain"
)

// Decoder turns one raw JSON value into a record
type Decoder[T any] func(json.RawMessage) (T, error)

// DecodeArray decodes a JSON array element by element, in order.
// The first failing element aborts the whole array.
func DecodeArray[T any](raw json.RawMessage, decodeItem Decoder[T]) ([]T, error) {
	if k := kindOf(raw); k != kindArray {
		return nil, &DecodeError{Type: "array", Reason: "expected array, got " + k.String()}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, &DecodeError{Type: "array", Reason: err.Error()}
	}

	items := make([]T, 0, len(elems))
	for i, elem := range elems {
		item, err := decodeItem(elem)
		if err != nil {
			return nil, &DecodeError{Type: "array", Field: strconv.Itoa(i), Reason: err.Error()}
		}
		items = append(items, item)
	}
	return items, nil
}

// DecodePage decodes one page of a paginated collection
func DecodePage[T any](raw json.RawMessage, decodeItem Decoder[T]) (*domain.Page[T], error) {
	o, err := newObject("page", raw)
	if err != nil {
		return nil, err
	}

	page := &domain.Page[T]{}
	if page.Href, err = o.str("href"); err != nil {
		return nil, err
	}
	if page.Limit, err = o.count("limit"); err != nil {
		return nil, err
	}
	if _, err = o.present("next"); err != nil {
		return nil, err
	}
	page.Next = o.optionalString("next")
	if page.Total, err = o.count("total"); err != nil {
		return nil, err
	}
	if page.Items, err = field(o, "items", func(raw json.RawMessage) ([]T, error) {
		return DecodeArray(raw, decodeItem)
	}); err != nil {
		return nil, err
	}
	return page, nil
}

func pageOf[T any](decodeItem Decoder[T]) Decoder[*domain.Page[T]] {
	return func(raw json.RawMessage) (*domain.Page[T], error) {
		return DecodePage(raw, decodeItem)
	}
}

// envelope extracts the value stored under key, as with {"albums": {...page...}}
func envelope[T any](key string, decode Decoder[T]) Decoder[T] {
	return func(raw json.RawMessage) (T, error) {
		var zero T
		o, err := newObject(key+"_envelope", raw)
		if err != nil {
			return zero, err
		}
		return field(o, key, decode)
	}
}
