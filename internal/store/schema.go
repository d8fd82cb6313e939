package store

// DefaultFile is the workbook path used when none is configured.
const DefaultFile = "finca_olivar_datos.xlsx"

// Table names, in menu order.
const (
	Finca        = "Finca"
	Labores      = "Labores"
	Costes       = "Costes"
	Ingresos     = "Ingresos"
	Inventario   = "Inventario"
	Rentabilidad = "Rentabilidad"
)

type tableDef struct {
	name    string
	columns []string
}

var schema = []tableDef{
	{Finca, []string{"ID Parcela", "Nombre", "Variedad", "Hectáreas", "Marco", "Riego"}},
	{Labores, []string{"Fecha", "Parcela", "Tipo", "Descripción", "Operario", "Horas", "Costo (€)"}},
	{Costes, []string{"Fecha", "Categoría", "Descripción", "Importe (€)", "Relacionado con"}},
	{Ingresos, []string{"Fecha", "Concepto", "Descripción", "Importe (€)", "Tipo"}},
	{Inventario, []string{"Producto", "Inicial", "Entrada", "Salida", "Stock", "Unidad"}},
	{Rentabilidad, []string{"Parcela", "Campaña", "Ingresos (€)", "Costes (€)", "Margen (€)", "Margen €/ha"}},
}

// TableNames returns the fixed table names in order.
func TableNames() []string {
	names := make([]string, len(schema))
	for i, def := range schema {
		names[i] = def.name
	}
	return names
}

// DefaultColumns returns the column set a new table is created with, or nil
// for a name outside the fixed set.
func DefaultColumns(name string) []string {
	for _, def := range schema {
		if def.name == name {
			return append([]string(nil), def.columns...)
		}
	}
	return nil
}

// Defaults returns the six empty tables a fresh workbook starts with.
func Defaults() *TableSet {
	set := &TableSet{}
	for _, def := range schema {
		set.Tables = append(set.Tables, &Table{
			Name:    def.name,
			Columns: append([]string(nil), def.columns...),
		})
	}
	return set
}
