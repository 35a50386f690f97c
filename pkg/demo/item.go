// Package demo is the product catalog served by the table server and the CLI.
package demo

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/matst80/slask-table/pkg/common/jsoncompat"
	"github.com/matst80/slask-table/pkg/sorting"
	"github.com/matst80/slask-table/pkg/types"
)

type Item struct {
	Id    string `json:"id"`
	Title string `json:"title"`
	Brand string `json:"brand,omitempty"`
	// Price in cents.
	Price int    `json:"price"`
	Stock int    `json:"stock"`
	Sku   string `json:"sku,omitempty"`
}

func ItemId(item Item) string {
	return item.Id
}

func SameItem(a, b Item) bool {
	return a == b
}

func FormatPrice(cents int) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

func Columns() []types.Column[Item] {
	return []types.Column[Item]{
		{
			Id:        "id",
			Title:     "Id",
			Hidden:    true,
			Position:  -1,
			Extractor: ItemId,
		},
		{
			Id:                   "title",
			Title:                "Title",
			Position:             0,
			MinWidth:             12,
			MaxWidth:             40,
			SortDirectionDefault: types.SortNone,
			Extractor:            func(i Item) string { return i.Title },
			Comparator:           sorting.ByFold(func(i Item) string { return i.Title }),
		},
		{
			Id:                   "brand",
			Title:                "Brand",
			Position:             1,
			MaxWidth:             20,
			SortDirectionDefault: types.SortNone,
			Extractor:            func(i Item) string { return i.Brand },
		},
		{
			Id:                   "price",
			Title:                "Price",
			Position:             2,
			MinWidth:             8,
			SortDirectionDefault: types.SortNone,
			Extractor:            func(i Item) string { return FormatPrice(i.Price) },
			Comparator:           sorting.ByNumber(func(i Item) int { return i.Price }),
		},
		{
			Id:                   "stock",
			Title:                "Stock",
			Position:             3,
			SortDirectionDefault: types.SortNone,
			Extractor:            func(i Item) string { return strconv.Itoa(i.Stock) },
			Comparator:           sorting.ByNumber(func(i Item) int { return i.Stock }),
		},
		{
			Id:                   "sku",
			Title:                "Sku",
			Position:             4,
			SortDirectionDefault: types.SortDisabled,
			Extractor:            func(i Item) string { return strings.ToUpper(i.Sku) },
		},
	}
}

func Catalog() []Item {
	return []Item{
		{Id: "1001", Title: "Espresso machine", Brand: "Sage", Price: 649900, Stock: 4, Sku: "sg-bes876"},
		{Id: "1002", Title: "burr grinder", Brand: "Baratza", Price: 229900, Stock: 0, Sku: "bz-enc"},
		{Id: "1003", Title: "Milk jug", Brand: "Motta", Price: 29900, Stock: 31, Sku: "mt-350"},
		{Id: "1004", Title: "Tamper", Brand: "Motta", Price: 34900, Stock: 12, Sku: "mt-t58"},
		{Id: "1005", Title: "Kettle", Brand: "Fellow", Price: 179900, Stock: 4, Sku: "fw-stagg"},
		{Id: "1006", Title: "Scale", Brand: "Acaia", Price: 199900, Stock: 7, Sku: "ac-lunar"},
	}
}

// LoadItems reads a JSON array of items.
func LoadItems(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeItems(data)
}

func DecodeItems(data []byte) ([]Item, error) {
	var items []Item
	if err := jsoncompat.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	for i, item := range items {
		if item.Id == "" {
			return nil, fmt.Errorf("item %d has no id", i)
		}
	}
	return items, nil
}
