package testutil

// LibraryGraph returns a fresh map_graph shaped library:
//
//	library (content "catalogue")
//	  book  id=1 lang=en price=9.5
//	    title "Dune"
//	  book  id=2 lang=fr
//	    title "Emma"
//	  magazine tags=[a b]
//
// Callers may mutate the result.
func LibraryGraph() map[string]any {
	return map[string]any{
		"name":    "library",
		"content": "catalogue",
		"adjacent": []any{
			map[string]any{
				"name": "book",
				"attr": map[string]any{"id": 1, "lang": "en", "price": 9.5},
				"adjacent": []any{
					map[string]any{"name": "title", "content": "Dune"},
				},
			},
			map[string]any{
				"name": "book",
				"attr": map[string]any{"id": 2, "lang": "fr"},
				"adjacent": []any{
					map[string]any{"name": "title", "content": "Emma"},
				},
			},
			map[string]any{"name": "magazine", "tags": []any{"a", "b"}},
		},
	}
}

// LibraryVertexCount is the number of vertices in LibraryGraph.
const LibraryVertexCount = 6
