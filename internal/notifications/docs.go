// Package notifications implements the notification service that emails clients
// when a service order enters a status flagged to notify them.
//
// The API process calls POST /notify with the order id and the new status name.
// The service looks the order up in the shared database, picks the recipient
// (the on-site collaborator's email, falling back to the client's), sends the
// email over SMTP and records every attempt in DynamoDB.
package notifications
