// Package pagination walks offset/limit paginated Jolpica collections.
//
// Jolpica returns fixed-size pages and declares the collection total in
// every response envelope. FetchAll starts at offset 0 and requests one
// page at a time until a page comes back empty or the next offset would
// reach the declared total, concatenating items in page order.
//
// Example usage:
//
//	races, err := pagination.FetchAll(ctx, "results.json", 100,
//		func(ctx context.Context, limit, offset int) (pagination.Page[ergast.Race], error) {
//			env, err := fetchEnvelope(ctx, season, "results.json", limit, offset)
//			if err != nil {
//				return pagination.Page[ergast.Race]{}, err
//			}
//			total, err := env.MRData.TotalCount()
//			if err != nil {
//				return pagination.Page[ergast.Race]{}, err
//			}
//			return pagination.Page[ergast.Race]{Items: env.MRData.Races(), Total: total}, nil
//		})
//
// The walk is deliberately sequential: each season query is a single
// logical thread of control, and a page failure aborts the whole
// retrieval rather than returning partial data.
package pagination
