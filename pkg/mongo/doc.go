// Package mongo connects to the MongoDB deployment backing the document
// variant of notification storage (see notify.MongoStorage).
//
// Configuration is environment-driven and connection setup retries through
// transient failures:
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "bookingkit")
//	if err != nil {
//		return err
//	}
//	storage := notify.NewMongoStorage(db.Collection("notifications"))
package mongo
