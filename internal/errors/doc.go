// Package errors provides coded errors for the dice-roller service.
//
// Every error carries a Code that survives wrapping, so a failure raised deep
// in a repository still reaches the transport with the right gRPC status:
//
//	if _, err := repo.Delete(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to delete roll")
//	}
//
// Config validation goes through ValidationBuilder:
//
//	vb := errors.NewValidationBuilder()
//	if cfg.Roller == nil {
//	    vb.RequiredField("Roller")
//	}
//	return vb.Build()
package errors
