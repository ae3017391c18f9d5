// Package stayfinder embeds the property discovery engine in a Go program.
//
// The client connects to the listing store (Redis, Valkey or MongoDB), loads
// a landmark dataset and answers text and proximity searches without the
// HTTP service in between.
//
//	client, err := stayfinder.New(ctx,
//	    stayfinder.WithRedis("localhost:6379", ""),
//	    stayfinder.WithLandmarkFile("config/landmarks.json"),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	res, _ := client.Search(ctx, "pune", "hostel")
//	near, _ := client.Nearby(ctx, stayfinder.NearbyQuery{Landmark: "COEP", RadiusKm: stayfinder.Km(5)})
//
// Errors are comparable with errors.Is against the exported sentinels.
package stayfinder
