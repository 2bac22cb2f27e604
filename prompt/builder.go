// Package prompt renders a generation request into the text prompt sent to the model.
package prompt

import (
	"fmt"
	"strings"

	codegen "github.com/haowjy/meridian-codegen"
)

// SystemPrompt is the persona sent alongside every generated prompt.
const SystemPrompt = "You are an expert React and TypeScript engineer who builds production-ready UI " +
	"components for Korean web services. You write clean, accessible, strongly typed code and " +
	"output only raw source code, never markdown fences or explanations."

// OutputFormatHeading marks the structural footer; it appears exactly once per prompt.
const OutputFormatHeading = "## Output Format"

type libraryGuide struct {
	name     string
	packages string
	styling  string
}

var libraryGuides = map[codegen.UILibrary]libraryGuide{
	codegen.UILibraryMUI: {
		name:     "Material-UI (MUI v5)",
		packages: "@mui/material, @mui/icons-material",
		styling:  "the sx prop and styled() from @mui/material/styles with theme spacing and palette tokens",
	},
	codegen.UILibraryAntd: {
		name:     "Ant Design (antd v5)",
		packages: "antd, @ant-design/icons",
		styling:  "antd design tokens via ConfigProvider/theme.useToken and the Space, Row and Col layout primitives",
	},
	codegen.UILibraryChakra: {
		name:     "Chakra UI (v2)",
		packages: "@chakra-ui/react, @chakra-ui/icons",
		styling:  "Chakra style props and theme tokens (colors, space, fontSizes) instead of raw CSS",
	},
}

// Build renders the prompt for one component. It has no side effects:
// identical inputs always yield a byte-identical prompt.
func Build(description, kind string, opts codegen.GenerationOptions) string {
	guide, ok := libraryGuides[opts.Library()]
	if !ok {
		guide = libraryGuides[codegen.UILibraryMUI]
	}
	if kind == "" {
		kind = "component"
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Create a React %s using %s based on the following description.\n\n", kind, guide.name)

	sb.WriteString("## Description\n")
	sb.WriteString(escapeHeadings(description))
	sb.WriteString("\n\n")

	sb.WriteString("## Requirements\n")
	fmt.Fprintf(&sb, "1. Use %s components idiomatically (import from %s)\n", guide.name, guide.packages)
	sb.WriteString("2. Write the component in TypeScript with strict typing\n")
	sb.WriteString("3. Use modern functional components with React hooks\n")
	sb.WriteString("4. Declare explicit type annotations for props, state and handlers\n")
	sb.WriteString("5. Make the layout responsive across mobile, tablet and desktop breakpoints\n")
	sb.WriteString("6. Follow Korean UI/UX conventions (Korean labels, date and currency formats)\n")

	if opts.StylesEnabled() {
		sb.WriteString("\n## Styling\n")
		fmt.Fprintf(&sb, "- Style with %s\n", guide.styling)
		sb.WriteString("- Keep colors and typography consistent with the theme\n")
		sb.WriteString("- Apply correct spacing, alignment and layout hierarchy\n")
	}

	if opts.InteractionsEnabled() {
		sb.WriteString("\n## Interactions\n")
		sb.WriteString("- Implement event handlers and local state with hooks\n")
		sb.WriteString("- Validate user input where the component accepts any\n")
		sb.WriteString("- Show loading and error states for asynchronous actions\n")
	}

	sb.WriteString("\n")
	sb.WriteString(OutputFormatHeading)
	sb.WriteString("\n")
	sb.WriteString("Structure the code in this order:\n")
	sb.WriteString("1. Import statements\n")
	sb.WriteString("2. Type definitions\n")
	sb.WriteString("3. Component implementation\n")
	sb.WriteString("4. Export statement\n\n")
	sb.WriteString("Respond with ONLY the complete component code. Do not include explanations, comments about the code, or markdown code fences.")

	return sb.String()
}

// escapeHeadings backslash-escapes the leading '#' run of every heading-like line so
// a description cannot open sections of its own, such as a second output footer.
func escapeHeadings(description string) string {
	lines := strings.Split(description, "\n")
	for i, line := range lines {
		body := strings.TrimLeft(line, " \t")
		hashes := len(body) - len(strings.TrimLeft(body, "#"))
		if hashes == 0 {
			continue
		}
		indent := line[:len(line)-len(body)]
		lines[i] = indent + strings.Repeat(`\#`, hashes) + body[hashes:]
	}
	return strings.Join(lines, "\n")
}

// Envelope wraps a built prompt into the request sent to the provider.
func Envelope(model, builtPrompt string) *codegen.RequestEnvelope {
	if model == "" {
		model = codegen.DefaultModel
	}
	return &codegen.RequestEnvelope{
		Model:       model,
		MaxTokens:   codegen.DefaultMaxTokens,
		Messages:    []codegen.Message{{Role: codegen.RoleUser, Content: builtPrompt}},
		Temperature: codegen.Float(codegen.DefaultTemperature),
		System:      SystemPrompt,
	}
}
