// Package http implements the notes REST API on top of chi.
//
// Routes:
//
//	GET    /              liveness message
//	GET    /version       build information
//	GET    /metrics       Prometheus metrics
//	GET    /notes-count   {"count": n}
//	GET    /notes/        ?skip=&limit=, ordered by creation time
//	POST   /notes/        {"content": "..."}
//	GET    /notes/{id}
//	PUT    /notes/{id}    {"content": "..."}
//	DELETE /notes/{id}    {"message": "Note deleted successfully"}
//
// Every /notes route requires "Authorization: Bearer <token>". Errors are
// written as {"detail": "..."}. A trailing slash is accepted on every path.
package http
