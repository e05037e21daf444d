package services

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"harborview/internal/domain"
	apperrors "harborview/pkg/errors"
)

// validationErr builds the taxonomy error used by payload validators.
func validationErr(message string) error {
	return apperrors.Validation(message)
}

// parseObjectID extracts and parses the :id path parameter. A malformed
// identifier is a client error, not a lookup miss.
func parseObjectID(c *gin.Context, message string) (bson.ObjectID, bool) {
	id, err := bson.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondValidation(c, message)
		return bson.ObjectID{}, false
	}
	return id, true
}

type statusPayload struct {
	Status string `json:"status"`
}

// updateLeadStatus is the shared status-transition handler for the three
// lead collections. Every enum value is reachable from every other; the
// update returns the post-transition record.
func updateLeadStatus(c *gin.Context, coll *mongo.Collection, notFoundMsg string) {
	var p statusPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		respondValidation(c, "Invalid request body")
		return
	}
	if !domain.IsValidStatus(domain.LeadStatus(p.Status)) {
		respondValidation(c, "Invalid status value")
		return
	}

	id, ok := parseObjectID(c, "Invalid id")
	if !ok {
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated bson.M
	err := coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "status", Value: p.Status},
			{Key: "updatedAt", Value: time.Now()},
		}}},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respondNotFound(c, notFoundMsg)
			return
		}
		respondStore(c, "Failed to update status", err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// deleteByID is the shared delete handler for admin record removal.
func deleteByID(c *gin.Context, coll *mongo.Collection, notFoundMsg, successMsg string) {
	id, ok := parseObjectID(c, "Invalid id")
	if !ok {
		return
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	res, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		respondStore(c, "Failed to delete record", err)
		return
	}
	if res.DeletedCount == 0 {
		respondNotFound(c, notFoundMsg)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": successMsg})
}
