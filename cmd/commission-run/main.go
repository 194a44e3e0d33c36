// commission-run recomputes monthly commissions for every business. Intended
// to run as a scheduled job shortly after month end; with no argument it
// targets the previous calendar month.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... \
//     REDIS_ADDRESS=... go run ./cmd/commission-run [2006-01]
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"bitbucket.org/mmdatafocus/bizmanager_backend/config"
	"bitbucket.org/mmdatafocus/bizmanager_backend/utils"
	"bitbucket.org/mmdatafocus/bizmanager_backend/workflow"
)

func main() {
	month := utils.MonthKey(time.Now().UTC().AddDate(0, -1, 0))
	if len(os.Args) > 1 {
		month = os.Args[1]
	}
	if _, _, err := utils.MonthRange(month); err != nil {
		fmt.Fprintf(os.Stderr, "invalid month %q: %v\n", month, err)
		os.Exit(1)
	}

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	ctx := context.Background()
	ctx = utils.SetUserNameInContext(ctx, "System")

	if err := workflow.RunMonthlyCommission(ctx, month); err != nil {
		fmt.Fprintf(os.Stderr, "commission run failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("commission run completed for %s\n", month)
}
