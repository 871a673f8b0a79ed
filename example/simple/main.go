// Command simple shows embedding the engine with a Go-constructed schema:
// a resolver-backed root field and default resolution over plain maps.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/miniql/miniql/executor"
	"github.com/miniql/miniql/language"
	"github.com/miniql/miniql/schema"
	"github.com/miniql/miniql/server"
)

func main() {
	user := schema.NewObject("User",
		&schema.Field{Name: "id", Type: schema.NewNonNull(schema.ID)},
		&schema.Field{Name: "name", Type: schema.String},
		&schema.Field{Name: "friends", Type: schema.NewList(schema.String)},
	)
	query := schema.NewObject("Query",
		schema.NewField("hello", schema.String, func(ctx context.Context, source any, args map[string]any) (any, error) {
			return "World", nil
		}),
		schema.NewField("user", user, func(ctx context.Context, source any, args map[string]any) (any, error) {
			return map[string]any{
				"id":      "1",
				"name":    "Alice",
				"friends": []any{"Bob", "Carol"},
			}, nil
		}),
	)

	sch, err := schema.New(query, nil)
	if err != nil {
		log.Fatal(err)
	}

	op, selections, err := language.Parse(`{ hello user { name friends } }`)
	if err != nil {
		log.Fatal(err)
	}
	result, err := executor.NewExecutor(sch).Execute(context.Background(), op, selections, nil)
	if err != nil {
		log.Fatal(err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(result)

	http.Handle("/query", server.New(sch, nil, server.WithPretty()))
	log.Println("listening on :8080")
	log.Fatal(http.ListenAndServe(":8080", nil))
}
