package schema

type ColumnType string

const (
	ColumnTypeInt   ColumnType = "INT"
	ColumnTypeFloat ColumnType = "FLOAT"
	ColumnTypeText  ColumnType = "TEXT"
	ColumnTypeBool  ColumnType = "BOOL"
	ColumnTypeEmail ColumnType = "EMAIL"
)

type Column struct {
	Name          string
	Type          ColumnType
	PrimaryKey    bool
	Unique        bool
	NotNull       bool
	AutoIncrement bool
	Default       interface{}
}
