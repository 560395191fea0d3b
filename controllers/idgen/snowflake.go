package idgen

import (
	"log"
	"reflect"

	"erp-app/types"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var node *snowflake.Node

func Init() {
	var err error
	node, err = snowflake.NewNode(1)
	if err != nil {
		log.Fatalf("Failed to init Snowflake: %v", err)
	}
}

func GenerateID() int64 {
	return node.Generate().Int64()
}

var snowflakeType = reflect.TypeOf(types.SnowflakeID(0))

// AutoGenerateSnowflakeID registers a create callback that fills zero
// SnowflakeID primary keys right before insert.
func AutoGenerateSnowflakeID(db *gorm.DB) {
	err := db.Callback().Create().Before("gorm:create").Register("idgen:assign_snowflake", func(tx *gorm.DB) {
		if tx.Statement.Schema == nil {
			return
		}
		field := tx.Statement.Schema.PrioritizedPrimaryField
		if field == nil || field.FieldType != snowflakeType {
			return
		}

		switch tx.Statement.ReflectValue.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < tx.Statement.ReflectValue.Len(); i++ {
				rv := tx.Statement.ReflectValue.Index(i)
				if _, zero := field.ValueOf(tx.Statement.Context, rv); zero {
					_ = field.Set(tx.Statement.Context, rv, GenerateID())
				}
			}
		case reflect.Struct:
			if _, zero := field.ValueOf(tx.Statement.Context, tx.Statement.ReflectValue); zero {
				_ = field.Set(tx.Statement.Context, tx.Statement.ReflectValue, GenerateID())
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to register snowflake callback: %v", err)
	}
}
