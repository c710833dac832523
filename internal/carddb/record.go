// Package carddb turns scrape results into the flat, stably identified
// card database and applies per-set updates to it.
package carddb

// Record is one variant of one card as persisted. Field names are read by
// the front-end and the translation pass and must not change.
type Record struct {
	CardCode    string `json:"card_code"`
	SetID       string `json:"set"`
	BaseName    string `json:"base_name"`
	VariantName string `json:"variant_name"`
	Rarity      string `json:"rarity"`
	// Yen.
	Price            int    `json:"price_jpy"`
	ImageURL         string `json:"image_url"`
	OfficialImageURL string `json:"official_image_url"`
	Finish           string `json:"finish"`
	HighDemand       bool   `json:"is_high_demand"`
	UniqueID         string `json:"unique_id"`
}
