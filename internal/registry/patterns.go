package registry

// Default matching rules for the policy-schedule layout, one per schema
// field. Each rule anchors on a stable label phrase and captures the value
// next to it. Values in these documents wrap across physical lines, so the
// label/value gap is matched with [\s\n]* and value classes admit interior
// spaces where the layout produces them; the engine condenses whitespace
// out of the capture afterwards.
var defaultPatterns = map[string]string{
	"NUM_POL":        `PÓLIZA\s+N[°º]\s*([A-Z0-9\/\.\-]+)`,
	"MON":            `MONTO\s+PRIMA\s+ÚNICA[\s\n]*([A-Z$\/\.]+)`,
	"NUM_DOC":        `N[°º][\s\n]*([0-9 ]{8,})`,
	"FEC_NAC":        `FECHA\s+DE\s+NACIMIENTO[\s\n]*([0-9 ]{6,})`,
	"INI_VIG_POL":    `FECHA(?:\s+DE)?\s+INICIO\s+VIGENCIA\s+(?:DE\s+LA\s+PÓLIZA|DEL\s+PG)[\s\n]*([0-9 ]{6,})`,
	"FIN_VIG_POL":    `FECHA(?:\s+DE)?\s+FIN\s+VIGENCIA\s+(?:DE\s+LA\s+PÓLIZA|DEL\s+PG)[\s\n]*([0-9 ]{6,})`,
	"PER_DIF":        `DIFERIMIENTO\s+DEL\s+PAGO\s*\(N[°º]\s*DE\s+AÑOS\)[\s\n]*([0-9]{1,3})`,
	"PER_GAR":        `N[°º]\s*MESES\s+PERIODO\s+GARANTIZADO\s*\(PG\)[\s\n]*([0-9]{1,3})`,
	"REM_BASE":       `MONTO\s+RENTA\s+BASE[\s\S]*?([A-Z$\/\.]+\s*\d[\d,\.]*)`,
	"PER_PAGO_RENTA": `PERIODICIDAD\s+DEL\s+PAGO[\s\n]*([A-ZÁÉÍÓÚ]+)`,
	"K_SEPELIO":      `SUMA\s+ASEGURADA\s+COB\.?\s+DE\s+SEPELIO[\s\n]*([A-Z$\/\.]+\s*\d[\d,\.]*)`,
	"P_UNICA":        `MONTO\s+PRIMA\s+ÚNICA[\s\n]*([A-Z$\/\.]+\s*\d[\d,\.]*)`,
	"PORC_DEV_PRIMA": `MONTO\s+DE\s+DEVOLUCIÓN\s+DE\s+PRIMA[\s\n]*([0-9]+%?)`,
	"TASA_VENTA":     `(?:TASA\s+DE\s+VENTA\s+DE\s+LA\s+PÓLIZA(?:\s*\(TV\))?|TASA\s+DE\s+VENTA\s*\(TV\)\s*DE\s+LA\s+PÓLIZA)[\s\n]*([0-9]+(?:\.[0-9]+)?)\s*%?`,
}
