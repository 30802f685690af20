package bom

// FormatDescriptor describes one known source layout for discovery
// surfaces such as the CLI's formats listing.
type FormatDescriptor struct {
	Format      Format `json:"format"`
	DisplayName string `json:"display_name"`
	Hint        string `json:"hint"`
}

// SupportedFormats lists the layouts the extractor understands, in
// detection priority order.
func SupportedFormats() []FormatDescriptor {
	return []FormatDescriptor{
		{
			Format:      FormatStandardListing,
			DisplayName: "GCSS-Army component listing",
			Hint:        "COMPONENT LISTING or HAND RECEIPT title with an LV column",
		},
		{
			Format:      FormatEquipmentPropertyRecord,
			DisplayName: "Equipment property record",
			Hint:        "PWR PLANT or OPERATIONAL SUPPORT markers in the page text",
		},
		{
			Format:      FormatUnknown,
			DisplayName: "Unrecognized layout",
			Hint:        "tries the standard strategy, then the property-record strategy",
		},
	}
}
