package output

// DefaultAssumptions lists the modelling assumptions printed with every report
var DefaultAssumptions = []string{
	"One rent-or-buy decision per month while renting; buying is permanent",
	"No purchase while the insured loan would exceed 95% of the price",
	"Savings reset to one month's contribution at purchase (deposit plus costs paid)",
	"Rent saved after purchase is redirected into savings",
	"Interest is charged on the loan net of savings (offset account)",
	"Home prices grow each month by a normal draw scaled by the periods per draw",
	"Net value is home price plus savings less the outstanding loan at the horizon",
}
