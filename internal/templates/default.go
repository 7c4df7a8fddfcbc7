package templates

// DefaultName is the key of the built-in template.
const DefaultName = "default"

// ScenesPlaceholder must appear in every usable template.
const ScenesPlaceholder = "{scenes}"

// DefaultTemplate is used when no template file overrides it.
const DefaultTemplate = `
EDIT LIST

Title: {project_name}
Date: {date}
Duration: {duration}

SCENE STRUCTURE:

{scenes}

TECHNICAL NOTES:

{technical_notes}
`
