// Package peoplefinder embeds the natural-language employee search pipeline
// in a Go program, backed by Redis with the search module.
//
// The client runs the same pipeline as the HTTP service: local
// preprocessing, filter extraction through a language model, fuzzy location
// resolution and a role-substring fallback when nothing usable is extracted.
//
//	client, _ := peoplefinder.New(ctx,
//	    peoplefinder.WithRedis("localhost:6379", ""),
//	    peoplefinder.WithOpenAI(os.Getenv("GROQ_API_KEY"), "", ""),
//	)
//	defer client.Close()
//
//	_, _ = client.Seed(ctx, employees, true)
//	page, _ := client.Search(ctx, "python developers in mumbay", 1, 20)
//	for _, e := range page.Results {
//	    fmt.Println(e.Name, e.Role, e.Location)
//	}
package peoplefinder
