// seed_taxes genera el script SQL para poblar las tablas paramétricas de
// impuestos (taxes y tax_zones) a partir de un CSV de tipos impositivos.
// Los CSV exportados de los ERP españoles suelen venir en ISO-8859-1;
// el lector convierte a UTF-8 de forma transparente.
//
// Formato del CSV: codigo;descripcion;tasa;recargo;tipo[;pais;region;destino;prioridad]
// Las columnas de zona son opcionales: si van rellenas se genera además una
// regla de sustitución en tax_zones (ej. IVA21 -> IGIC7 en ES/Canarias).
//
// Uso: go run ./cmd/seed_taxes [ruta/impuestos.csv]
// Por defecto busca impuestos.csv en el directorio actual.
// Escribe: migrations/002_seed_taxes.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	csvPath := "impuestos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	type tax struct{ code, desc, rate, surcharge, kind string }
	type zone struct{ taxCode, country, region, target, priority string }
	var taxes []tax
	var zones []zone

	for i, row := range rows {
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "codigo") {
			continue // cabecera
		}
		if len(row) < 5 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		kind := strings.TrimSpace(row[4])
		if kind == "" {
			kind = "percentage"
		}
		taxes = append(taxes, tax{
			code:      strings.TrimSpace(row[0]),
			desc:      strings.TrimSpace(row[1]),
			rate:      numberOrZero(row[2]),
			surcharge: numberOrZero(row[3]),
			kind:      kind,
		})
		if len(row) >= 9 && strings.TrimSpace(row[7]) != "" {
			zones = append(zones, zone{
				taxCode:  strings.TrimSpace(row[0]),
				country:  strings.TrimSpace(row[5]),
				region:   strings.TrimSpace(row[6]),
				target:   strings.TrimSpace(row[7]),
				priority: numberOrZero(row[8]),
			})
		}
	}
	if len(taxes) == 0 {
		fmt.Fprintln(os.Stderr, "El CSV no contiene impuestos")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "migrations", "002_seed_taxes.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Impuestos y reglas de zona fiscal\n")
	out.WriteString("-- Generado desde " + filepath.Base(csvPath) + " por cmd/seed_taxes\n\n")

	out.WriteString("-- 1. Impuestos\n")
	out.WriteString("INSERT INTO taxes (code, description, rate, surcharge_rate, kind) VALUES\n")
	for i, t := range taxes {
		sep := ","
		if i == len(taxes)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s', %s, %s, '%s')%s\n",
			escapeSQL(t.code), escapeSQL(t.desc), t.rate, t.surcharge, escapeSQL(t.kind), sep)
	}
	out.WriteString("ON CONFLICT (code) DO UPDATE SET\n")
	out.WriteString("  description = EXCLUDED.description,\n")
	out.WriteString("  rate = EXCLUDED.rate,\n")
	out.WriteString("  surcharge_rate = EXCLUDED.surcharge_rate,\n")
	out.WriteString("  kind = EXCLUDED.kind;\n\n")

	if len(zones) > 0 {
		out.WriteString("-- 2. Reglas de zona fiscal\n")
		for _, z := range zones {
			fmt.Fprintf(out, "INSERT INTO tax_zones (id, tax_code, target_tax_code, country_code, region_code, priority)\n")
			fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', '%s', '%s', %s)\n",
				escapeSQL(z.taxCode), escapeSQL(z.target), escapeSQL(z.country), escapeSQL(z.region), z.priority)
			out.WriteString("ON CONFLICT (tax_code, country_code, region_code) DO UPDATE SET\n")
			out.WriteString("  target_tax_code = EXCLUDED.target_tax_code,\n")
			out.WriteString("  priority = EXCLUDED.priority;\n")
		}
	}

	fmt.Printf("Generado %s: %d impuestos, %d reglas de zona\n", outPath, len(taxes), len(zones))
}

// numberOrZero normaliza un número del CSV (coma decimal española incluida).
func numberOrZero(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return "0"
	}
	return s
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
