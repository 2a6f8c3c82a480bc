package enums

import "fmt"

// ProductKind identifies which catalog family a product id belongs to.
type ProductKind string

const (
	ProductKindSong  ProductKind = "song"
	ProductKindAlbum ProductKind = "album"
	ProductKindMerch ProductKind = "merch"
)

var validProductKinds = []ProductKind{
	ProductKindSong,
	ProductKindAlbum,
	ProductKindMerch,
}

// String implements fmt.Stringer.
func (k ProductKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known ProductKind.
func (k ProductKind) IsValid() bool {
	for _, candidate := range validProductKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseProductKind converts raw input into a ProductKind. Legacy clients
// send numeric codes ("0"/"1"/"2"), which map to song/album/merch.
func ParseProductKind(value string) (ProductKind, error) {
	switch value {
	case "0":
		return ProductKindSong, nil
	case "1":
		return ProductKindAlbum, nil
	case "2":
		return ProductKindMerch, nil
	}
	for _, candidate := range validProductKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product kind %q", value)
}
