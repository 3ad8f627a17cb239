package mongo

import "go.mongodb.org/mongo-driver/v2/mongo/options"

func findOneAndUpdateAfter() options.Lister[options.FindOneAndUpdateOptions] {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
