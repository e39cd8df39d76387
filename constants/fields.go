package constants

// FieldNames is the canonical extraction schema for a policy schedule,
// in the exact column order the export guarantees. Every document record
// carries one value per name.
var FieldNames = []string{
	"NUM_POL",
	"MON",
	"NUM_DOC",
	"FEC_NAC",
	"INI_VIG_POL",
	"FIN_VIG_POL",
	"PER_DIF",
	"PER_GAR",
	"REM_BASE",
	"PER_PAGO_RENTA",
	"K_SEPELIO",
	"P_UNICA",
	"PORC_DEV_PRIMA",
	"TASA_VENTA",
}

// MissingValue is stored for a field whose rule did not match. A non-blank
// placeholder so spreadsheet consumers can tell "not found" from "not yet
// filled".
const MissingValue = "0"

// DocumentColumn is the leading column naming the source file of each row.
const DocumentColumn = "ARCHIVO"
