package graphql

import (
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
)

// IsMutation сообщает, что выбранная операция документа - mutation.
// Операция выбирается как в исполнителе: по OperationName, либо
// единственная в документе. Невалидный документ дает false, ошибку
// тогда вернет Execute.
func IsMutation(p Params) bool {
	doc, err := parser.Parse(parser.ParseParams{
		Source: source.NewSource(&source.Source{Body: []byte(p.Query), Name: "GraphQL request"}),
	})
	if err != nil {
		return false
	}

	var selected *ast.OperationDefinition
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if p.OperationName == "" {
			if selected != nil {
				// несколько операций без имени
				return false
			}
			selected = op
			continue
		}
		if op.Name != nil && op.Name.Value == p.OperationName {
			selected = op
			break
		}
	}
	return selected != nil && selected.Operation == ast.OperationTypeMutation
}
