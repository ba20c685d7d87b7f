package ecad

// Kind tells how a raw field is formatted.
type Kind int

const (
	Text         Kind = iota // trimmed as is
	Percent                  // 9(03)V99, 5 digits with 2 implied decimals
	Amount                   // 9(10)V9(9), 19 digits with 9 implied decimals
	Period                   // DDMMYYYYDDMMYYYY
	MonthYear                // MMYYYY
	Distribution             // one digit distribution code
)

// Field is a fixed-width slice of a statement line. Start and End are 0-based
// character offsets, End excluded.
type Field struct {
	Name  string
	Start int
	End   int
	Kind  Kind
}

// RecordType is the first character of a statement line.
type RecordType rune

const (
	Header      RecordType = '0'
	Audiovisual RecordType = '1'
	Indirect    RecordType = '2'
	Show        RecordType = '3'
)

func (t RecordType) String() string {
	if t == Header {
		return "HEADER"
	}
	if l, ok := layouts[t]; ok {
		return l.Label
	}
	return string(t)
}

// Layout is the static field table of one record type.
type Layout struct {
	Type   RecordType
	Label  string // value of the TIPO_REGISTRO column, empty for the header
	Fields []Field
}

// MinLen is the length a line must reach to be a well formed record: the end
// of its last percent, period or month field. Trailing text and amount fields
// may be blank and trimmed away.
func (l Layout) MinLen() int {
	n := 0
	for _, f := range l.Fields {
		switch f.Kind {
		case Text, Distribution, Amount:
		default:
			n = max(n, f.End)
		}
	}
	return n
}

// RecordTypeColumn is the field added to data records with their layout label.
const RecordTypeColumn = "TIPO_REGISTRO"

var layouts = map[RecordType]Layout{
	Header: {
		Type: Header,
		Fields: []Field{
			{"NOM_TITULAR", 22, 56, Text},
			{"COD_TITULARECAD", 58, 69, Text},
			{"DAT_PAGAMENTO", 69, 75, MonthYear},
			{"NOM_PSEUDOTITULAR", 75, 109, Text},
		},
	},
	Audiovisual: {
		Type:  Audiovisual,
		Label: "AUDIOVISUAL/CINEMA",
		Fields: []Field{
			{"DSC_RUBRICA", 4, 49, Text},
			{"TIT_OBRA", 49, 109, Text},
			{"COD_ECADOBRA", 109, 122, Text},
			{"NOM_TITULOORIG", 122, 182, Text},
			{"NOM_CAPITULOAUDIOORIG", 242, 302, Text},
			{"REFERENCIA", 362, 397, Text},
			{"PCT_PARTICIPACAO", 418, 423, Percent},
			{"COD_CATEGORIA", 440, 442, Text},
			{"TIP_LANCAMENTO", 442, 443, Distribution},
			{"ISWC", 450, 461, Text},
			{"ISRC", 461, 473, Text},
			{"NOM_INTERPRETE", 488, 548, Text},
			{"PERIODO", 568, 584, Period},
			{"VLR_RENDOBRA", 584, 603, Amount},
			{"VLR_NOMINALTITOBRA", 603, 622, Amount},
		},
	},
	Indirect: {
		Type:  Indirect,
		Label: "INDIRETA",
		Fields: []Field{
			{"DSC_RUBRICA", 4, 49, Text},
			{"TIT_OBRA", 49, 109, Text},
			{"COD_ECADOBRA", 109, 122, Text},
			{"NOM_INTERPRETE", 122, 182, Text},
			{"REFERENCIA", 212, 247, Text},
			{"PCT_PARTICIPACAO", 268, 273, Percent},
			{"COD_CATEGORIA", 290, 292, Text},
			{"TIP_LANCAMENTO", 292, 293, Distribution},
			{"TOT_EXEC", 293, 299, Text},
			{"ISWC", 300, 311, Text},
			{"ISRC", 311, 323, Text},
			{"IND_LANCAMENTO", 330, 331, Text},
			{"PERIODO", 367, 383, Period},
			{"VLR_RENDOBRA", 383, 402, Amount},
			{"VLR_NOMINALTITOBRA", 402, 421, Amount},
		},
	},
	Show: {
		Type:  Show,
		Label: "SHOW",
		Fields: []Field{
			{"DSC_RUBRICA", 4, 49, Text},
			{"TIT_OBRA", 49, 109, Text},
			{"COD_ECADOBRA", 109, 122, Text},
			{"REFERENCIA", 122, 157, Text},
			{"DSC_TITULOFUNCAO", 166, 216, Text},
			{"DAT_PERIODO", 216, 232, Period},
			{"NOM_INTERPRETESHOW", 232, 282, Text},
			{"DSC_LOCAL", 282, 312, Text},
			{"NOM_MUNICIPIOSHOW", 312, 332, Text},
			{"PCT_PARTICIPACAO", 346, 351, Percent},
			{"TIP_LANCAMENTO", 370, 371, Distribution},
			{"TOT_EXEC", 371, 377, Text},
			{"ISWC", 378, 389, Text},
			{"VLR_RENDOBRA", 420, 439, Amount},
			{"VLR_NOMINALTITOBRA", 439, 458, Amount},
		},
	},
}

// LayoutOf returns the layout of a record type.
func LayoutOf(t RecordType) (Layout, bool) {
	l, ok := layouts[t]
	return l, ok
}

// columns maps field names to the output column labels, in output order.
var columns = []struct{ field, label string }{
	{"DAT_PAGAMENTO", "MES REPASSE"},
	{"NOM_TITULAR", "TITULAR"},
	{"NOM_PSEUDOTITULAR", "PSEUDONIMO TITULAR"},
	{"COD_TITULARECAD", "COD ECAD TITULAR"},
	{RecordTypeColumn, "TIPO_REGISTRO"},
	{"COD_CATEGORIA", "CAT"},
	{"TIT_OBRA", "TITULO DA MUSICA"},
	{"COD_ECADOBRA", "COD ECAD MUSICA"},
	{"REFERENCIA", "REFERENCIA AUTORAL"},
	{"NOM_INTERPRETE", "INTERPRETE"},
	{"ISWC", "ISWC"},
	{"ISRC", "ISRC"},
	{"DSC_RUBRICA", "RUBRICA"},
	{"TIP_LANCAMENTO", "TIPO DISTRIBUICAO"},
	{"TOT_EXEC", "EXECUCOES"},
	{"VLR_RENDOBRA", "VALOR TOTAL"},
	{"PCT_PARTICIPACAO", "PERC TITULAR"},
	{"VLR_NOMINALTITOBRA", "RATEIO"},
	{"NOM_TITULOORIG", "TITULO AUDIOVISUAL"},
	{"NOM_CAPITULOAUDIOORIG", "CAPITULO AUDIOVISUAL"},
	{"PERIODO", "PERIODO DISTRIBUICAO"},
	{"IND_LANCAMENTO", "TIPO LANCAMENTO"},
	{"DSC_TITULOFUNCAO", "NOME SHOW"},
	{"DAT_PERIODO", "PERIODO SHOW"},
	{"NOM_INTERPRETESHOW", "INTERPRETE SHOW"},
	{"DSC_LOCAL", "LOCAL SHOW"},
	{"NOM_MUNICIPIOSHOW", "CIDADE SHOW"},
}

// Column labels of the output table used by other tools.
const (
	ColumnWorkCode = "COD ECAD MUSICA"
	ColumnTitle    = "TITULO DA MUSICA"
	ColumnTotal    = "VALOR TOTAL"
	ColumnShare    = "RATEIO"
)
