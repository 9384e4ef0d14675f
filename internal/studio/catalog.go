package studio

// DesignStyle is one selectable aesthetic. The catalog is fixed at compile
// time; Prompt is the directive sent verbatim to the generation service.
type DesignStyle struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Prompt      string `json:"-"`
	PreviewURL  string `json:"preview_url"`
}

var designStyles = []DesignStyle{
	{
		ID:          "scandinavian",
		Name:        "Scandinavian",
		Description: "Clean lines, minimalism, and functionality without sacrificing beauty.",
		Prompt:      `Transform this room into a Scandinavian style interior. Use light woods, white walls, neutral textiles, and minimalist furniture. Ensure plenty of natural light and cozy "hygge" elements.`,
		PreviewURL:  "https://images.unsplash.com/photo-1598928506311-c55ded91a20c?auto=format&fit=crop&q=80&w=400",
	},
	{
		ID:          "mid-century",
		Name:        "Mid-Century Modern",
		Description: "A balance of organic shapes and clean lines from the 1950s and 60s.",
		Prompt:      "Redesign this room in Mid-Century Modern style. Use warm wood tones (teak, walnut), tapered legs on furniture, geometric patterns, and pops of mustard yellow or teal.",
		PreviewURL:  "https://images.unsplash.com/photo-1556228453-efd6c1ff04f6?auto=format&fit=crop&q=80&w=400",
	},
	{
		ID:          "industrial",
		Name:        "Industrial",
		Description: "Raw materials, exposed architectural elements, and edgy aesthetics.",
		Prompt:      "Give this room an Industrial makeover. Incorporate exposed brick, metal piping, weathered wood, leather accents, and a dark, moody color palette with large Edison bulb fixtures.",
		PreviewURL:  "https://images.unsplash.com/photo-1512918766671-ed6a99807145?auto=format&fit=crop&q=80&w=400",
	},
	{
		ID:          "bohemian",
		Name:        "Bohemian",
		Description: "Free-spirited, eclectic, and full of life, culture, and interesting items.",
		Prompt:      "Reimagine this space as a Bohemian sanctuary. Use vibrant colors, layered rugs, plenty of indoor plants, rattan furniture, and woven wall hangings.",
		PreviewURL:  "https://images.unsplash.com/photo-1524758631624-e2822e304c36?auto=format&fit=crop&q=80&w=400",
	},
	{
		ID:          "japandi",
		Name:        "Japandi",
		Description: "The perfect blend of Japanese artistic minimalism and Scandinavian comfort.",
		Prompt:      "Apply Japandi design to this room. Combine Scandinavian functionality with Japanese rustic minimalism. Use low furniture, organic shapes, and a muted earth-toned palette.",
		PreviewURL:  "https://images.unsplash.com/photo-1615529182904-14819c35db37?auto=format&fit=crop&q=80&w=400",
	},
}

// Styles returns the catalog in display order.
func Styles() []DesignStyle {
	out := make([]DesignStyle, len(designStyles))
	copy(out, designStyles)
	return out
}

// StyleByID looks up a catalog entry.
func StyleByID(id string) (DesignStyle, bool) {
	for _, s := range designStyles {
		if s.ID == id {
			return s, true
		}
	}
	return DesignStyle{}, false
}
