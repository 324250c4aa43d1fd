package docstore

import (
	"errors"
	"log/slog"

	"travel-kernel/internal/infra"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	codeWriteConflict         = 112
	labelTransientTransaction = "TransientTransactionError"
)

func wrapMongoErr(logger *slog.Logger, msg string, err error) error {
	return infra.WrapRepoErr(logger, kindOf(err), msg, err)
}

func kindOf(err error) infra.RepositoryErrorKind {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return infra.KindNotFound
	case mongo.IsDuplicateKeyError(err):
		return infra.KindDuplicateKey
	case isWriteConflict(err):
		return infra.KindWriteConflict
	case mongo.IsNetworkError(err), mongo.IsTimeout(err), errors.Is(err, mongo.ErrClientDisconnected):
		return infra.KindUnavailable
	default:
		return infra.KindDBFailure
	}
}

func isWriteConflict(err error) bool {
	var se mongo.ServerError
	if errors.As(err, &se) {
		return se.HasErrorCode(codeWriteConflict) || se.HasErrorLabel(labelTransientTransaction)
	}
	return false
}
