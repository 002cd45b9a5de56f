package cli

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Print receipts, notes and tickets on a thermal printer"
	MsgPrintShort     = "Render a template and send it to the printer"
	MsgPreviewShort   = "Render a template and show it on screen"
	MsgTemplatesShort = "Inspect the available templates"
	MsgListShort      = "List all available templates"
	MsgShowShort      = "Show a template's variables and segments"
	MsgValidateShort  = "Check variable values against a template"
	MsgSettingsShort  = "Show or change printer settings"
	MsgConfigShort    = "Work with the configuration file"
	MsgHistoryShort   = "List recorded print jobs"
	MsgWebShort       = "Serve the JSON API over HTTP"
	MsgUpdateShort    = "Check whether a newer release exists"
	MsgVersionShort   = "Print version information"

	// Status messages
	MsgPrinted          = "Printed '%s' (%d chars) to %s\n"
	MsgNoTemplates      = "No templates found."
	MsgAvailable        = "Available templates:"
	MsgValidationOK     = "All required values present."
	MsgSettingSaved     = "Saved %s = %v\n"
	MsgHistoryCleared   = "Removed %d print jobs from history.\n"
	MsgUpdateAvailable  = "Update available: %s (running %s)\n"
	MsgUpToDate         = "printerm is up to date (%s)\n"
	MsgWebListening     = "Serving on http://%s\n"
	MsgUpdateHint       = "A newer printerm (%s) is available.\n"
	MsgPrinterNotSetTip = "Set the printer address first: printerm settings set-ip <address>"

	// Flag descriptions
	FlagVarDesc     = "Set a template variable as name=value (repeatable)"
	FlagPreviewDesc = "Show the rendered output instead of printing"
	FlagOutputDesc  = "Output format: auto, term, text or json"
	FlagLimitDesc   = "Maximum number of jobs to list"
	FlagClearDesc   = "Delete all recorded jobs instead of listing"
	FlagPortDesc    = "Port to listen on (overrides web.port)"
	FlagVerboseDesc = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
)
