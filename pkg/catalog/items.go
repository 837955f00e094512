package catalog

// Well-known item ids referenced by routing, labelling and rule data.
const (
	PaidAds            = "paid-ads"
	AmplitudeSDK       = "amplitude-sdk"
	AmplitudeAnalytics = "amplitude-analytics"
	LLM                = "llm"
	Snowflake          = "snowflake"
	BigQuery           = "bigquery"
	Databricks         = "databricks"
	S3                 = "s3"
	CDP                = "cdp"
	Segment            = "segment"
	Tealium            = "tealium"
)

// Grid and drop-zone constants shared by the layout model and geometry.
const (
	SlotColumns  = 6
	DropPaddingX = 48.0
	DropPaddingY = 64.0
)

// DefaultPriority applies to every item not listed in the priority table.
const DefaultPriority = 100

var priorities = map[string]int{
	PaidAds:            0,
	AmplitudeSDK:       0,
	AmplitudeAnalytics: 0,
}

// Priority returns the ordering priority of id; lower sorts first.
func Priority(id string) int {
	if p, ok := priorities[id]; ok {
		return p
	}
	return DefaultPriority
}

// Id groups used by the built-in rule set.
var (
	CDPLike           = []string{CDP, Segment, Tealium}
	PrimaryWarehouses = []string{BigQuery, Databricks, Snowflake}
	Warehouses        = []string{BigQuery, Databricks, Snowflake, S3}
)

// Badge is an optional capability marker shown on the Amplitude SDK node.
type Badge struct {
	ID    string
	Short string
	Label string
}

// Badges lists the selectable Amplitude SDK badges in display order.
var Badges = []Badge{
	{ID: "analytics", Short: "An", Label: "Analytics"},
	{ID: "experiment", Short: "Ex", Label: "Experiment"},
	{ID: "guides-surveys", Short: "GS", Label: "Guides & Surveys"},
	{ID: "session-replay", Short: "SR", Label: "Session Replay"},
}

// IsBadge reports whether id names one of [Badges].
func IsBadge(id string) bool {
	for _, b := range Badges {
		if b.ID == id {
			return true
		}
	}
	return false
}

// Item is a node template offered by the catalog.
type Item struct {
	ID    string `json:"id" toml:"id"`
	Name  string `json:"name" toml:"name"`
	Icon  string `json:"icon" toml:"icon"`
	Layer Layer  `json:"layer" toml:"layer"`
}

var builtin = map[Layer][]Item{
	Marketing: {
		{ID: PaidAds, Name: "Paid Ads", Icon: "paid-ads"},
		{ID: "email", Name: "Email", Icon: "email"},
		{ID: "sms", Name: "SMS", Icon: "sms"},
		{ID: "push-notifications", Name: "Push", Icon: "push"},
		{ID: "social-media", Name: "Social Media", Icon: "social"},
		{ID: "search", Name: "Organic", Icon: "search"},
		{ID: "referral", Name: "Referral", Icon: "referral"},
	},
	Experiences: {
		{ID: "website", Name: "Website", Icon: "globe"},
		{ID: "web-app", Name: "Web App", Icon: "web"},
		{ID: "mobile-app", Name: "Mobile App", Icon: "mobile"},
		{ID: "ott", Name: "OTT", Icon: "ott"},
		{ID: "call-center", Name: "Call Center", Icon: "call-center"},
		{ID: "pos", Name: "PoS", Icon: "pos"},
	},
	Sources: {
		{ID: AmplitudeSDK, Name: "Amplitude SDK", Icon: "amplitude"},
		{ID: Segment, Name: "Segment", Icon: "segment-mark"},
		{ID: Tealium, Name: "Tealium", Icon: "tealium"},
		{ID: "api", Name: "HTTP API", Icon: "api"},
		{ID: CDP, Name: "CDP", Icon: "cdp"},
		{ID: "etl", Name: "ETL", Icon: "etl"},
		{ID: "crm", Name: "CRM", Icon: "crm"},
	},
	Analysis: {
		{ID: AmplitudeAnalytics, Name: "Amplitude Analytics", Icon: "amplitude"},
		{ID: Snowflake, Name: "Snowflake", Icon: "snowflake"},
		{ID: BigQuery, Name: "BigQuery", Icon: "bigquery"},
		{ID: Databricks, Name: "Databricks", Icon: "databricks"},
		{ID: "bi", Name: "BI", Icon: "search"},
		{ID: S3, Name: "S3", Icon: "s3"},
		{ID: LLM, Name: "LLM", Icon: "llm"},
	},
	Activation: {
		{ID: "braze", Name: "Braze", Icon: "braze"},
		{ID: "iterable", Name: "Iterable", Icon: "iterable"},
		{ID: "salesforce", Name: "Salesforce", Icon: "salesforce"},
		{ID: "hubspot", Name: "HubSpot", Icon: "hubspot"},
		{ID: "marketo", Name: "Marketo", Icon: "marketo"},
		{ID: "intercom", Name: "Intercom", Icon: "intercom"},
	},
}

// Catalog indexes the built-in items by id and by layer.
type Catalog struct {
	items   map[string]Item
	byLayer map[Layer][]Item
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c := &Catalog{
		items:   make(map[string]Item),
		byLayer: make(map[Layer][]Item, len(Sequence)),
	}
	for _, layer := range Sequence {
		for _, it := range builtin[layer] {
			it.Layer = layer
			c.items[it.ID] = it
			c.byLayer[layer] = append(c.byLayer[layer], it)
		}
	}
	return c
}

// Item looks up a catalog item by id.
func (c *Catalog) Item(id string) (Item, bool) {
	it, ok := c.items[id]
	return it, ok
}

// LayerOf returns the layer a catalog id belongs to.
func (c *Catalog) LayerOf(id string) (Layer, bool) {
	it, ok := c.items[id]
	return it.Layer, ok
}

// Items returns the catalog items of layer in display order.
func (c *Catalog) Items(layer Layer) []Item {
	return append([]Item(nil), c.byLayer[layer]...)
}

// Len returns the number of catalog items.
func (c *Catalog) Len() int { return len(c.items) }
