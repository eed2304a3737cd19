package constants

// GoodsKeywords is the fixed catalog of goods phrases used for description
// extraction. Matching is case-insensitive on whole-word boundaries; iteration
// order only decides the order results are collected in, not precedence.
// Entries are lowercase, misspellings included on purpose (messages arrive as
// informal WhatsApp text).
var GoodsKeywords = []string{
	"aluminium section", "angel channel", "battery scrap", "finish goods", "paper scrap", "shutter material",
	"iron scrap", "metal scrap", "ms plates", "ms scrap", "machine scrap", "plastic dana", "plastic scrap",
	"rubber scrap", "pushta scrap", "rolling scrap", "tmt bar", "tarafa", "metal screp", "plastic screp",
	"plastic scrp", "plastic secrap", "raddi scrap", "pusta scrap", "allminium scrap",
	"ajwain", "ajvain", "aluminium", "alluminium", "allumium", "alluminum", "aluminum", "angel", "angal",
	"battery", "battrey", "cement", "siment", "chaddar", "chadar", "chader", "churi", "chhuri", "choori",
	"coil", "sheet", "sheets", "drum", "dram", "drums", "finish", "fenish", "paper", "shutter", "shuttar",
	"haldi", "haaldi", "oil", "taraba", "tarafe", "tarama", "tarana", "tarapa", "tarfa", "trafa", "machine",
	"pipe", "pip", "plastic", "pilastic", "pladtic", "plastec", "plastick", "plastics", "plastik", "rubber",
	"rubar", "rabar", "ruber", "pusta", "steel", "isteel", "steels", "stel", "sugar", "tubes", "tyre", "tayar",
	"tyer", "scrap", "screp", "dana", "pushta", "rolling", "tmt", "bar", "loha", "pusta", "tilli", "tili",
	"finishu", "finisih", "finis", "finnish", "finsh", "fnish", "funish", "plates", "plate", "iron", "iran",
}

// UnassignedVehiclePhrases are accepted verbatim as a truck number when a
// message carries no registration plate. Order is the resolution priority:
// several entries are substrings of each other ("bellgad" matches inside
// "bellgadi"), so the longer phrase must be tried first.
var UnassignedVehiclePhrases = []string{
	"new truck",
	"new tractor",
	"new gadi",
	"bellgadi",
	"bellgada",
	"bellgade",
	"bellgad",
}

// IsUnassignedVehiclePhrase reports whether v (already lowercased and trimmed
// by the caller) is exactly one of the fixed phrases.
func IsUnassignedVehiclePhrase(v string) bool {
	for _, p := range UnassignedVehiclePhrases {
		if v == p {
			return true
		}
	}
	return false
}
