// Package tadata deploys MCP (Model Context Protocol) servers from OpenAPI
// specifications by calling the tadata deployment service.
//
// A deployment starts from exactly one spec source: an in-memory document, a
// local file, a URL, or an already-validated [openapi.Spec]. The SDK
// validates the document's structure, normalizes the auth forwarding
// configuration, posts everything to the service in a single attempt, and
// returns a [DeployResult] or one of four typed errors.
//
//	res, err := tadata.Deploy(ctx, tadata.DeployRequest{
//		Source: tadata.SourceFromFile("openapi.yaml"),
//		APIKey: os.Getenv("TADATA_API_KEY"),
//		Name:   "orders-api",
//	})
//	if err != nil {
//		var specErr *sdkerrors.SpecInvalidError
//		if sdkerrors.As(err, &specErr) {
//			for _, detail := range specErr.Details {
//				fmt.Println(" -", detail)
//			}
//		}
//		return err
//	}
//	fmt.Println("deployed:", res.ID)
//
// Deploy never retries and keeps all state call-scoped, so a single
// DeployRequest value and concurrent Deploy calls are both safe. Pass a
// context to bound or cancel the work, and a *slog.Logger to observe stage
// boundaries; logging never changes behavior.
package tadata
