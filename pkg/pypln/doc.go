// Package pypln provides a client for the PyPLN corpus and document REST API.
//
// # Overview
//
// A Client is bound to one base URL and one set of credentials. Corpora and
// documents returned by the client keep a reference to the client's Session,
// so follow-up calls (uploading into a corpus, reading a document's
// properties) are signed the same way without passing credentials again.
//
//	client, err := pypln.NewClient("https://demo.pypln.org", pypln.Token("s3cr3t"))
//	if err != nil {
//		return err
//	}
//
//	corpus, err := client.AddCorpus(ctx, "news", "Newspaper articles")
//	if err != nil {
//		return err
//	}
//
//	docs, failures := corpus.AddDocuments(ctx, []pypln.Content{
//		pypln.File("a.txt", a),
//		pypln.File("b.txt", b),
//	})
//
// # Authentication
//
// Two credential shapes are supported:
//   - BasicAuth: HTTP Basic authentication with a username and password
//   - Token: the header "Authorization: Token <value>"
//
// # Error Handling
//
// Unexpected HTTP statuses are returned as *ResponseError, which matches
// ErrFetchFailed for reads and ErrCreateFailed for writes when tested with
// errors.Is. Nothing is retried.
package pypln
