// ABOUTME: Built-in character roster and default script
// ABOUTME: Static configuration loaded once at process start
package roster

// DefaultScript is the script shown when the editor opens
const DefaultScript = `¡Hola educador/a! empezaste la Travesía Sociemocional y esta embarcación ya zarpó.
Bienvenido/a a un recorrido lleno de descubrimientos sobre un tema tan profundo como fascinante. Lo exploraremos paso a paso con calma y curiosidad.`

var builtin = []Character{
	{
		ID:          "kiko",
		Name:        "Kiko",
		Role:        "Autoconciencia",
		Description: "Es un hombre tranquilo que le gusta meditar y maneja la autoconciencia. Tiene una voz que te genera paz.",
		Voice:       "Charon",
		Color:       "#6366F1",
		AvatarSeed:  "kiko",
	},
	{
		ID:          "lila",
		Name:        "Lila",
		Role:        "Autorregulación",
		Description: "Es una mujer joven que maneja la autorregulación. Su voz es tranquila y divertida.",
		Voice:       "Kore",
		Color:       "#EC4899",
		AvatarSeed:  "lila",
	},
	{
		ID:          "nimbus",
		Name:        "Nimbus",
		Role:        "Conciencia Social",
		Description: "Es un hombre joven, enamorado de los animales y las personas. Tiene una voz alegre y serena.",
		Voice:       "Fenrir",
		Color:       "#0EA5E9",
		AvatarSeed:  "nimbus",
	},
	{
		ID:          "rox",
		Name:        "Rox",
		Role:        "Habilidades de Relación",
		Description: "Es un hombre muy alegre y le gusta hablar. Su voz es alegre y divertida.",
		Voice:       "Aoede",
		Color:       "#F59E0B",
		AvatarSeed:  "rox",
	},
	{
		ID:          "zaz",
		Name:        "Zaz",
		Role:        "Toma de Decisiones",
		Description: "Es un hombre determinado y le gusta planear. Su voz es concreta e intelectual.",
		Voice:       "Fenrir",
		Color:       "#64748B",
		AvatarSeed:  "zaz",
	},
	{
		ID:          "giro",
		Name:        "Giro",
		Role:        "Responsabilidad",
		Description: "Es un hombre muy joven y el más responsable. Su voz es un poco chillona (aguda).",
		Voice:       "Puck",
		Color:       "#84CC16",
		AvatarSeed:  "giro",
	},
}

var defaultRoster = mustNew(builtin, DefaultScript)

// Default returns the built-in roster
func Default() *Roster {
	return defaultRoster
}

func mustNew(characters []Character, script string) *Roster {
	r, err := New(characters, script)
	if err != nil {
		panic(err)
	}
	return r
}
