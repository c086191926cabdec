// Package sdk embeds the merchstore catalog search engine in other Go
// programs. It needs no database: callers pass their own items and get back
// a ranked list that is never empty for a non-empty catalog.
//
//	items := []sdk.Item{
//	    {ID: "hoodie", Name: "Alumni Hoodie", Category: "Apparel", Rating: 4.8},
//	    {ID: "mug", Name: "Crest Mug", Category: "Homeware", Rating: 4.9},
//	}
//	res := sdk.Evaluate(items, "hoody", "Homeware")
//	// res.Tier == sdk.TierWidened, res.Items[0].ID == "hoodie"
//
// Matching ignores case and punctuation. Literal substring hits always
// outrank fuzzy token hits, and ties keep the caller's order.
package sdk
