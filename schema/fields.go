package schema

// casters maps every field code to its casting function.
var casters = map[string]Caster{
	// counts of repeated datapoint groups
	"NP": Int,
	"NR": Int,

	// settlement and publishing times
	"SD": Date,
	"SP": Int,
	"TS": DateTime,
	"TP": DateTime,
	"TE": DateTime,
	"TA": DateTime,

	// physical notification levels
	"VP": Float,
	"VE": Float,
	"VF": Float,
	"VA": Float,
	"VB": Float,

	// bid-offer data and acceptances
	"NK": Int,
	"NN": Int,
	"OP": Float,
	"BP": Float,
	"SO": Bool("T"),
	"PF": Bool("T"),
	"AD": Bool("T"),
	"RR": Bool("T"),
	"OV": Float,
	"BV": Float,
	"SA": Bool("S"),
	"OC": Float,
	"BC": Float,
	"P1": Float,
	"P2": Float,
	"P3": Float,
	"P4": Float,
	"P5": Float,
	"P6": Float,
	"SV": Float,

	// dynamic data
	"SE": Float,
	"SI": Float,
	"MZ": Int,
	"MN": Int,
	"DZ": Int,
	"DB": Int,
	"DO": Int,
	"DV": Float,
	"DP": Int,
	"U1": Float,
	"U2": Float,
	"U3": Float,
	"UB": Float,
	"UC": Float,
	"R1": Float,
	"R2": Float,
	"R3": Float,
	"RB": Float,
	"RC": Float,

	// system prices
	"PB":  Float,
	"PS":  Float,
	"PD":  String,
	"RSP": Float,
	"RP":  Float,
	"RV":  Float,
	"BD":  Bool("T"),
	"NI":  Float,
	"AO":  Float,
	"AB":  Float,
	"T1":  Float,
	"T2":  Float,
	"PP":  Float,
	"PC":  Float,

	// balancing services adjustments
	"A3":  Float,
	"A4":  Float,
	"A7":  Float,
	"A8":  Float,
	"A9":  Float,
	"A10": Float,
	"A11": Float,
	"A12": Float,

	// market index, bid-offer totals
	"MI": String,
	"M1": Float,
	"M2": Float,
	"OT": Float,
	"BT": Float,

	// generation, demand and frequency
	"FT": String,
	"FG": Int,
	"SF": Float,
	"VD": Float,
	"VM": Float,
	"VI": Float,
	"TO": Float,
	"TN": Float,
	"TL": Float,
	"TH": Float,
	"LP": Float,
	"DR": Float,

	// free text
	"SW": String,
	"MT": String,
	"SM": String,
}

// accepted lists the field codes each message shape may carry, in wire order.
// Count markers (NP, NR) are handled by the decoder and are not listed.
var accepted = map[Key][]string{
	{BM, "FPN"}:   {"SD", "SP", "TS", "VP"},
	{BM, "QPN"}:   {"SD", "SP", "TS", "VP"},
	{BM, "MEL"}:   {"SD", "SP", "TS", "VE"},
	{BM, "MIL"}:   {"SD", "SP", "TS", "VF"},
	{BM, "BOD"}:   {"SD", "SP", "NN", "OP", "BP", "TS", "VB"},
	{BM, "BOALF"}: {"NK", "SO", "PF", "TA", "AD", "RR", "TS", "VA"},
	{BM, "QAS"}:   {"SD", "SP", "SV"},

	{BP, "BOAV"}:    {"SD", "SP", "NK", "NN", "OV", "BV", "SA"},
	{BP, "PTAV"}:    {"SD", "SP", "NN", "OV", "BV"},
	{BP, "EBOCF"}:   {"SD", "SP", "NN", "OC", "BC"},
	{BP, "DISPTAV"}: {"SD", "SP", "NN", "OV", "P1", "P2", "P3", "P4", "P5", "P6", "BV"},

	{Dynamic, "SEL"}:  {"TE", "SE"},
	{Dynamic, "SIL"}:  {"TE", "SI"},
	{Dynamic, "MZT"}:  {"TE", "MZ"},
	{Dynamic, "MNZT"}: {"TE", "MN"},
	{Dynamic, "NDZ"}:  {"TE", "DZ"},
	{Dynamic, "NTB"}:  {"TE", "DB"},
	{Dynamic, "NTO"}:  {"TE", "DO"},
	{Dynamic, "MDV"}:  {"TE", "DV"},
	{Dynamic, "MDP"}:  {"TE", "DP"},
	{Dynamic, "RURE"}: {"TE", "U1", "U2", "U3", "UB", "UC"},
	{Dynamic, "RURI"}: {"TE", "U1", "U2", "U3", "UB", "UC"},
	{Dynamic, "RDRE"}: {"TE", "R1", "R2", "R3", "RB", "RC"},
	{Dynamic, "RDRI"}: {"TE", "R1", "R2", "R3", "RB", "RC"},

	{System, "DISEBSP"}:  {"SD", "SP", "PB", "PS", "PD", "RSP", "RP", "RV", "BD", "NI", "AO", "AB", "T1", "T2", "PP", "PC"},
	{System, "NETBSAD"}:  {"SD", "SP", "A3", "A4", "A7", "A8", "A9", "A10", "A11", "A12"},
	{System, "MID"}:      {"SD", "SP", "MI", "M1", "M2"},
	{System, "TBOD"}:     {"SD", "SP", "OT", "BT"},
	{System, "FUELINST"}: {"TP", "SD", "SP", "TS", "FT", "FG"},
	{System, "FUELHH"}:   {"SD", "SP", "FT", "FG"},
	{System, "FREQ"}:     {"TS", "SF"},
	{System, "TEMP"}:     {"TS", "TO", "TN", "TL", "TH"},
	{System, "SYSWARN"}:  {"TP", "SW"},
	{System, "INDGEN"}:   {"TP", "SD", "SP", "VD"},
	{System, "INDDEM"}:   {"TP", "SD", "SP", "VD"},
	{System, "NDF"}:      {"TP", "SD", "SP", "VD"},
	{System, "TSDF"}:     {"TP", "SD", "SP", "VD"},
	{System, "MELNGC"}:   {"TP", "SD", "SP", "VM"},
	{System, "IMBALNGC"}: {"TP", "SD", "SP", "VI"},
	{System, "LOLP"}:     {"TP", "SD", "SP", "LP", "DR"},

	{Info, "SYSMSG"}: {"TP", "MT", "SM"},
}
