// Package namegen derives a deterministic, human-readable two-word name
// for a ruleset signature (§6): stable across runs, so the same army
// composition always earns the same champion name.
package namegen

import "hash/fnv"

// adjectives and nouns are each 64 entries: 4096 distinct combinations
// (§6).
var adjectives = [64]string{
	"Ashen", "Bold", "Crimson", "Drowsy", "Ember", "Feral", "Gilded", "Hollow",
	"Ivory", "Jagged", "Keen", "Lucid", "Molten", "Nimble", "Obsidian", "Pale",
	"Quiet", "Restless", "Sable", "Tattered", "Umber", "Verdant", "Wary", "Xeric",
	"Yawning", "Zealous", "Amber", "Brittle", "Clawed", "Dusky", "Errant", "Frost",
	"Grim", "Hushed", "Iron", "Jaded", "Knotted", "Lean", "Murky", "Numb",
	"Onyx", "Pitted", "Quilted", "Ragged", "Slate", "Thorny", "Unbowed", "Vexed",
	"Weathered", "Xanthic", "Yielding", "Zenith", "Auburn", "Blunt", "Coiled", "Dire",
	"Eager", "Faded", "Gaunt", "Hardy", "Idle", "Jovial", "Kindled", "Languid",
}

var nouns = [64]string{
	"Adder", "Badger", "Cobra", "Drake", "Egret", "Falcon", "Gryphon", "Hawk",
	"Ibis", "Jackal", "Kestrel", "Lynx", "Mantis", "Newt", "Osprey", "Panther",
	"Quail", "Raven", "Serpent", "Talon", "Urchin", "Viper", "Wolf", "Xiphias",
	"Yak", "Zebu", "Asp", "Boar", "Condor", "Dingo", "Eel", "Ferret",
	"Gecko", "Heron", "Iguana", "Jaguar", "Kite", "Locust", "Magpie", "Narwhal",
	"Owl", "Puma", "Quetzal", "Ram", "Shrike", "Tern", "Urial", "Vulture",
	"Wasp", "Xerus", "Yabby", "Zephyr", "Albatross", "Bison", "Crane", "Dragon",
	"Elk", "Fox", "Gull", "Mongoose", "Ibex", "Jay", "Kraken", "Leopard",
}

// Name returns signature's deterministic two-word champion name.
func Name(signature string) string {
	h := fnv.New64a()
	h.Write([]byte(signature))
	sum := h.Sum64()

	adj := adjectives[sum%64]
	noun := nouns[(sum/64)%64]
	return adj + " " + noun
}
