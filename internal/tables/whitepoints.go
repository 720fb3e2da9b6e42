/*
NAME
  whitepoints.go

DESCRIPTION
  whitepoints.go lists the named reference whitepoints a CRT or gamut
  descriptor may be configured against, as CIE1931 xy chromaticity pairs.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package tables

// Whitepoint names a preset reference whitepoint chromaticity.
type Whitepoint int

const (
	WhitepointD65 Whitepoint = iota
	Whitepoint9300K27MPCD
	Whitepoint9300K8MPCD
	WhitepointIlluminantC
	Whitepoint6900K
	Whitepoint7000K
	Whitepoint7100K
	Whitepoint7250K
	WhitepointD75
	Whitepoint8500K
	Whitepoint8800K
	WhitepointBohnsack
	WhitepointNECMultisyncC400
	WhitepointKDSVS19
	WhitepointMitsubishiD93Fairchild
	WhitepointMitsubishiD65Fairchild
	WhitepointSonyPVM20L5
)

// WhitepointXY is xy by Whitepoint.
var WhitepointXY = map[Whitepoint][2]float64{
	WhitepointD65:                     {0.312713, 0.329016},
	Whitepoint9300K27MPCD:             {0.281, 0.311},
	Whitepoint9300K8MPCD:              {0.28345, 0.29775},
	WhitepointIlluminantC:             {0.310063, 0.316158},
	Whitepoint6900K:                   {0.306769, 0.322990},
	Whitepoint7000K:                   {0.305390, 0.321565},
	Whitepoint7100K:                   {0.304054, 0.320173},
	Whitepoint7250K:                   {0.302126, 0.318146},
	WhitepointD75:                     {0.29902, 0.31485},
	Whitepoint8500K:                   {0.289145, 0.303920},
	Whitepoint8800K:                   {0.286707, 0.301135},
	WhitepointBohnsack:                {0.2836, 0.2963},
	WhitepointNECMultisyncC400:        {0.28, 0.315},
	WhitepointKDSVS19:                 {0.281, 0.311},
	WhitepointMitsubishiD93Fairchild:  {0.2838, 0.3290},
	WhitepointMitsubishiD65Fairchild:  {0.3124, 0.2977},
	WhitepointSonyPVM20L5:             {0.313091, 0.329377},
}
