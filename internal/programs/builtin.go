package programs

// BuiltinName is the catalog name of the firmware's built-in program set.
const BuiltinName = "merlin400"

// builtinPrograms returns a fresh copy of the authored program list.
// The order here is the menu order shown to users.
func builtinPrograms() []Program {
	return []Program{
		{
			ID:              1,
			Name:            "Make Extract",
			Description:     "Performs a full extraction of the cannabis and removes the alcohol. The extraction does not decarboxylate the material",
			Icon:            "close_fullscreen",
			Color:           "var(--drizzle-red)",
			SoakTimeDefault: intPtr(30),
			StatusLabels: []ThresholdLabel{
				{MinValue: 0.2, Label: "Initializing"},
				{MinValue: 0.4, Label: "Extracting"},
				{MinValue: 0.6, Label: "Distilling"},
				{MinValue: 0.8, Label: "Finishing"},
			},
		},
		{
			ID:          2,
			Name:        "Decarboxylate",
			Description: "Decarboxylates the extracted oil. Please run this program after the oil has been extracted and purified",
			Icon:        "build",
			Color:       "var(--drizzle-blue)",
			StatusLabels: []ThresholdLabel{
				{MinValue: 0.0, Label: "Starting"},
				{MinValue: 0.1, Label: "Decarboxylating"},
			},
		},
		{
			ID:           3,
			Name:         "Heat for Mixing",
			Description:  "Heats the oil to 50 degrees so you can mix it with olive oil or siphon it off with a pipette.",
			Icon:         "invert_colors",
			Color:        "var(--drizzle-orange)",
			StatusLabels: []ThresholdLabel{},
		},
		{
			ID:           4,
			Name:         "Distillation Only",
			Description:  "Distills the alcohol present in the distiller. Does not perform an extraction.",
			Icon:         "invert_colors",
			Color:        "var(--drizzle-green)",
			StatusLabels: []ThresholdLabel{},
		},
		{
			ID:          5,
			Name:        "Extract Only",
			Description: "Extacts the material in the machine, but does not remove the alcohol afterwards.",
			// Trailing spaces are in the shipped data; use IconName for display.
			Icon:         "invert_colors  ",
			Color:        "var(--drizzle-purple)",
			StatusLabels: []ThresholdLabel{},
		},
		{
			ID:           6,
			Name:         "Vent Pump",
			Description:  "Vents the pump and blows air through it in case the pump is contaminated and not running smooth.",
			Icon:         "invert_colors",
			Color:        "var(--drizzle-purple)",
			StatusLabels: []ThresholdLabel{},
		},
	}
}
